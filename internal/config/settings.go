package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jbonatakis/cabinlog/internal/fsutil"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKey = errors.New("unknown config key")

// SetValue parses raw according to the option's type and stores it in the config file at
// path, keeping the other keys of that layer.
func SetValue(path, key, raw string) error {
	opt, ok := LookupOption(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	cfg, err := readLayer(path)
	if err != nil {
		return err
	}
	if err := applyValue(&cfg, opt, &raw); err != nil {
		return err
	}
	return SaveConfig(path, cfg)
}

// UnsetValue removes key from the config file at path.
func UnsetValue(path, key string) error {
	opt, ok := LookupOption(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	cfg, err := readLayer(path)
	if err != nil {
		return err
	}
	if err := applyValue(&cfg, opt, nil); err != nil {
		return err
	}
	return SaveConfig(path, cfg)
}

// SaveConfig writes one config layer. A layer without values removes the file.
func SaveConfig(path string, cfg RawConfig) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	cfg = prune(cfg)
	if isEmpty(cfg) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove config %s: %w", path, err)
		}
		return nil
	}
	version := SchemaVersion
	cfg.SchemaVersion = &version

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, b, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func readLayer(path string) (RawConfig, error) {
	if path == "" {
		return RawConfig{}, errors.New("config path is empty")
	}
	cfg, _, err := loadConfigFile(path)
	return cfg, err
}

// applyValue sets (raw != nil) or clears (raw == nil) one option.
func applyValue(cfg *RawConfig, opt OptionMetadata, raw *string) error {
	var (
		s *string
		i *int
		b *bool
	)
	if raw != nil {
		v := strings.TrimSpace(*raw)
		switch opt.Type {
		case OptionTypeString:
			s = &v
		case OptionTypeEnum:
			norm, ok := normalizeEnum(&v, opt.Choices)
			if !ok {
				return fmt.Errorf("config key %q: %q is not one of %s", opt.KeyPath, v, strings.Join(opt.Choices, ", "))
			}
			s = &norm
		case OptionTypeInt:
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config key %q expects an integer: %w", opt.KeyPath, err)
			}
			if opt.Bounds != nil && (n < opt.Bounds.Min || n > opt.Bounds.Max) {
				return fmt.Errorf("config key %q must be between %d and %d", opt.KeyPath, opt.Bounds.Min, opt.Bounds.Max)
			}
			i = &n
		case OptionTypeBool:
			bv, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config key %q expects true or false: %w", opt.KeyPath, err)
			}
			b = &bv
		}
	}

	switch opt.KeyPath {
	case KeyStorageBackend:
		ensure(&cfg.Storage).Backend = s
	case KeyStoragePath:
		ensure(&cfg.Storage).Path = s
	case KeyAIModel:
		ensure(&cfg.AI).Model = s
	case KeyAITimeoutSeconds:
		ensure(&cfg.AI).TimeoutSeconds = i
	case KeyMapsEnabled:
		ensure(&cfg.Maps).Enabled = b
	case KeyPhotoMaxDimension:
		ensure(&cfg.Photo).MaxDimension = i
	case KeyReportDir:
		ensure(&cfg.Report).Dir = s
	case KeyLogLevel:
		ensure(&cfg.Log).Level = s
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, opt.KeyPath)
	}
	return nil
}

func ensure[T any](section **T) *T {
	if *section == nil {
		*section = new(T)
	}
	return *section
}

// prune drops sections left without any value.
func prune(cfg RawConfig) RawConfig {
	if cfg.Storage != nil && cfg.Storage.Backend == nil && cfg.Storage.Path == nil {
		cfg.Storage = nil
	}
	if cfg.AI != nil && cfg.AI.Model == nil && cfg.AI.TimeoutSeconds == nil {
		cfg.AI = nil
	}
	if cfg.Maps != nil && cfg.Maps.Enabled == nil {
		cfg.Maps = nil
	}
	if cfg.Photo != nil && cfg.Photo.MaxDimension == nil {
		cfg.Photo = nil
	}
	if cfg.Report != nil && cfg.Report.Dir == nil {
		cfg.Report = nil
	}
	if cfg.Log != nil && cfg.Log.Level == nil {
		cfg.Log = nil
	}
	return cfg
}

func isEmpty(cfg RawConfig) bool {
	return cfg.Storage == nil && cfg.AI == nil && cfg.Maps == nil &&
		cfg.Photo == nil && cfg.Report == nil && cfg.Log == nil
}
