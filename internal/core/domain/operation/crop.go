package operation

import (
	"context"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Crop struct {
	resolver    port.Resolver
	transformer port.Transformer
	encoder     port.Encoder
}

func NewCrop(resolver port.Resolver, transformer port.Transformer, encoder port.Encoder) *Crop {
	return &Crop{resolver: resolver, transformer: transformer, encoder: encoder}
}

func (c *Crop) GetAction() string {
	return "crop"
}

func (c *Crop) Execute(ctx context.Context, request *domain.Request) *domain.Reply {
	l := log.With().
		Str("action", c.GetAction()).
		Str("src", request.Src).
		Str("dest", request.Dest).
		Logger()

	quality, err := requestQuality(request.Quality)
	if err != nil {
		return domain.Failure(err)
	}

	if request.Width == nil || request.Height == nil {
		return domain.Failure(domain.ErrInvalidSize)
	}

	// An inverted rectangle would be silently canonicalized downstream.
	if *request.Width <= 0 || *request.Height <= 0 || request.X < 0 || request.Y < 0 {
		return domain.Failure(domain.ErrInvalidSize)
	}

	src, srcPath, err := c.resolver.Resolve(request.Src)
	if err != nil {
		return domain.Failure(err)
	}

	dest, destPath, err := c.resolver.Resolve(request.Dest)
	if err != nil {
		return domain.Failure(err)
	}

	file, err := src.Read(ctx, srcPath)
	if err != nil {
		l.Warn().Err(err).Msg("failed to read source image")
		return domain.Failure(domain.ErrNotFound(err))
	}

	img, err := c.transformer.Decode(file.Data)
	if err != nil {
		l.Error().Err(err).Msg("failed to decode source image")
		return domain.Failure(domain.ErrProcessing(err))
	}

	bounds := img.Bounds()
	if request.X+*request.Width > bounds.Dx() || request.Y+*request.Height > bounds.Dy() {
		return domain.Failure(domain.ErrCropOutOfBounds)
	}

	cropped := c.transformer.Crop(img, request.X, request.Y, *request.Width, *request.Height)

	l.Debug().
		Int("x", request.X).
		Int("y", request.Y).
		Int("width", *request.Width).
		Int("height", *request.Height).
		Msg("cropped image")

	return persist(ctx, dest, destPath, c.encoder, file, cropped, quality)
}
