// Package operation implements the bus actions: resize, crop, compress
// and resizeMultiple. Every operation validates its parameters before
// touching storage and converts every failure into a structured error
// reply.
package operation

import (
	"context"
	"image"
	"path"
	"strings"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

// requestQuality validates an optional quality parameter, falling back
// to the default when absent.
func requestQuality(quality *float64) (float64, error) {
	if quality == nil {
		return domain.DefaultQuality, nil
	}

	if *quality <= 0 || *quality > 1 {
		return 0, domain.ErrInvalidQuality
	}

	return *quality, nil
}

// persist encodes img for the destination filename and writes it
// through the destination provider.
func persist(ctx context.Context, dest port.Storage, destPath string, encoder port.Encoder,
	src *domain.ImageFile, img image.Image, quality float64) *domain.Reply {
	data, err := encoder.Encode(img, path.Base(destPath), quality)
	if err != nil {
		log.Error().Err(err).Str("dest", destPath).Msg("failed to encode image")
		return domain.Failure(domain.ErrProcessing(err))
	}

	locator, err := dest.Write(ctx, destPath, &domain.ImageFile{
		Data:        data,
		Filename:    path.Base(destPath),
		ContentType: src.ContentType,
	})
	if err != nil || strings.TrimSpace(locator) == "" {
		log.Error().Err(err).Str("dest", destPath).Msg("failed to write image")
		return domain.Failure(domain.ErrWriteFailed(err))
	}

	return domain.Written(locator, len(data))
}
