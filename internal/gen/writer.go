package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"type-duplicate/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Relocate moves files under outputDir, one subdirectory per package import
// path, so files of different packages never share a path. An empty
// outputDir leaves files in their package directories.
func Relocate(files []GeneratedFile, outputDir string) []GeneratedFile {
	if outputDir == "" {
		return files
	}

	moved := make([]GeneratedFile, len(files))
	for i, file := range files {
		file.Dir = filepath.Join(outputDir, filepath.FromSlash(file.Package))
		moved[i] = file
	}

	return moved
}

// WriteFiles writes all generated files. Each file goes to its package
// directory, or below outputDir when it is set (see Relocate).
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range Relocate(files, outputDir) {
		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := file.Path()

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", outputPath, err)
		}

		common.Logger().Info("wrote file", zap.String("path", outputPath))
	}

	return nil
}

// Stale returns the paths of files whose on-disk content is missing or
// differs from the generated content.
func Stale(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		onDisk, err := os.ReadFile(file.Path())

		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, file.Path())
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Path(), err)
		case !bytes.Equal(onDisk, file.Content):
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}
