package operation

import (
	"context"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Resize struct {
	resolver    port.Resolver
	transformer port.Transformer
	encoder     port.Encoder
}

func NewResize(resolver port.Resolver, transformer port.Transformer, encoder port.Encoder) *Resize {
	return &Resize{resolver: resolver, transformer: transformer, encoder: encoder}
}

func (r *Resize) GetAction() string {
	return "resize"
}

func (r *Resize) Execute(ctx context.Context, request *domain.Request) *domain.Reply {
	l := log.With().
		Str("action", r.GetAction()).
		Str("src", request.Src).
		Str("dest", request.Dest).
		Logger()

	quality, err := requestQuality(request.Quality)
	if err != nil {
		return domain.Failure(err)
	}

	if request.Width == nil && request.Height == nil {
		return domain.Failure(domain.ErrInvalidSize)
	}

	src, srcPath, err := r.resolver.Resolve(request.Src)
	if err != nil {
		return domain.Failure(err)
	}

	dest, destPath, err := r.resolver.Resolve(request.Dest)
	if err != nil {
		return domain.Failure(err)
	}

	file, err := src.Read(ctx, srcPath)
	if err != nil {
		l.Warn().Err(err).Msg("failed to read source image")
		return domain.Failure(domain.ErrNotFound(err))
	}

	img, err := r.transformer.Decode(file.Data)
	if err != nil {
		l.Error().Err(err).Msg("failed to decode source image")
		return domain.Failure(domain.ErrProcessing(err))
	}

	bounds := img.Bounds()

	plan, err := domain.ResizePlan(bounds.Dx(), bounds.Dy(), request.Width, request.Height, request.Stretch)
	if err != nil {
		return domain.Failure(err)
	}

	resized := r.transformer.Scale(img, plan.ScaleWidth, plan.ScaleHeight)
	if plan.Crop {
		resized = r.transformer.Crop(resized, plan.CropX, plan.CropY, plan.CropWidth, plan.CropHeight)
	}

	l.Debug().
		Int("scaleWidth", plan.ScaleWidth).
		Int("scaleHeight", plan.ScaleHeight).
		Bool("crop", plan.Crop).
		Msg("resized image")

	return persist(ctx, dest, destPath, r.encoder, file, resized, quality)
}
