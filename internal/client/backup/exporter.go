package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileExporter пишет payload backup в файл внутри каталога
type FileExporter struct {
	dir string
}

// NewFileExporter создает FileExporter для каталога dir
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir}
}

// Export writes payload to dir/filename with mode 0600 and returns the path.
func (e *FileExporter) Export(ctx context.Context, filename string, payload []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(e.dir, filepath.Base(filename))
	if err := os.WriteFile(path, payload, 0600); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
