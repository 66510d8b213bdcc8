package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jbonatakis/cabinlog/internal/fsutil"
)

const (
	DefaultDirName  = ".cabinlog"
	DefaultFileName = "trips.json"
)

// FileSlot keeps the slot value in one file on disk.
type FileSlot struct {
	Path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{Path: path}
}

func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read trips file %s: %w", s.Path, err)
	}
	return b, nil
}

func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write trips file: %w", err)
	}
	return nil
}
