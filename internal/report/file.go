package report

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/jbonatakis/cabinlog/internal/fsutil"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// FileName is the default report file name for a trip code.
func FileName(code string) string {
	name := unsafeFileChars.ReplaceAllString(code, "_")
	if name == "" {
		name = "viaje"
	}
	return "Informe_" + name + ".html"
}

// WriteFile stores a rendered report, creating the directory if needed.
func WriteFile(path, doc string) error {
	if err := fsutil.WriteFileAtomic(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open hands the report file to the system browser.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve report path: %w", err)
	}
	switch runtime.GOOS {
	case "windows":
		err = startCommand("rundll32", "url.dll,FileProtocolHandler", abs)
	case "darwin":
		err = startCommand("open", abs)
	default:
		err = startCommand("xdg-open", abs)
	}
	if err != nil {
		return fmt.Errorf("open report %s: %w", abs, err)
	}
	return nil
}

// OpenFailureMessage tells the user where to find a report that could not be opened.
func OpenFailureMessage(path string) string {
	return fmt.Sprintf("No se pudo abrir la ventana del informe. Ábralo manualmente desde: %s", path)
}
