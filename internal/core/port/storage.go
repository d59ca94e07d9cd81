package port

import (
	"context"

	"imgbus/internal/core/domain"
)

type Storage interface {
	// Read fetches the file stored at the backend-specific path.
	Read(ctx context.Context, path string) (*domain.ImageFile, error)
	// Write persists file at the backend-specific path and returns the
	// locator of the written file.
	Write(ctx context.Context, path string, file *domain.ImageFile) (string, error)
	// Close releases the backend connection.
	Close()
}

type Resolver interface {
	// Resolve returns the storage provider registered for the locator's
	// scheme together with the path portion of the locator.
	Resolve(locator string) (Storage, string, error)
}
