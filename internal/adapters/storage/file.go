// Package storage provides the storage providers selectable by locator
// scheme: local filesystem, GridFS and S3-compatible blob stores.
package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"imgbus/internal/core/domain"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// File stores images on the local filesystem, rooted at a configured
// base path.
type File struct {
	fs afero.Fs
}

func NewFile(basePath string) *File {
	return &File{fs: afero.NewBasePathFs(afero.NewOsFs(), basePath)}
}

func (f *File) Read(_ context.Context, path string) (*domain.ImageFile, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	return &domain.ImageFile{
		Data:        data,
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (f *File) Write(_ context.Context, path string, file *domain.ImageFile) (string, error) {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creating directory for %s: %w", path, err)
	}

	if err := afero.WriteFile(f.fs, path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("error writing file %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("bytes", len(file.Data)).Msg("wrote file")

	return "file://" + path, nil
}

func (f *File) Close() {}
