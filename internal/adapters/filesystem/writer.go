// Package filesystem persists rendered artifacts to the project directory.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsamuelsen11/emuctl/internal/ports"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
)

// Compile-time interface check.
var _ ports.ArtifactWriter = (*Writer)(nil)

const fileMode = 0o644

// Writer writes artifacts into one directory. Each file is written to a
// temporary sibling and renamed over the target, so readers never see a
// half-written recipe.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the directory files are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// Write persists every file. It stops at the first failure; files already
// renamed stay in place.
func (w *Writer) Write(files []recipe.File) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", w.dir, err)
	}
	for _, f := range files {
		if err := w.writeFile(f); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(f recipe.File) error {
	if f.Name == "" || filepath.Base(f.Name) != f.Name {
		return fmt.Errorf("invalid artifact name %q", f.Name)
	}
	target := filepath.Join(w.dir, f.Name)

	tmp, err := os.CreateTemp(w.dir, "."+f.Name+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(f.Content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
