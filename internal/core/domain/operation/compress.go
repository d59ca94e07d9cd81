package operation

import (
	"context"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Compress struct {
	resolver    port.Resolver
	transformer port.Transformer
	encoder     port.Encoder
}

func NewCompress(resolver port.Resolver, transformer port.Transformer, encoder port.Encoder) *Compress {
	return &Compress{resolver: resolver, transformer: transformer, encoder: encoder}
}

func (c *Compress) GetAction() string {
	return "compress"
}

func (c *Compress) Execute(ctx context.Context, request *domain.Request) *domain.Reply {
	l := log.With().
		Str("action", c.GetAction()).
		Str("src", request.Src).
		Str("dest", request.Dest).
		Logger()

	// Quality is the whole point of a compress, so unlike the other
	// actions it is mandatory here.
	if request.Quality == nil {
		return domain.Failure(domain.ErrInvalidQuality)
	}

	quality, err := requestQuality(request.Quality)
	if err != nil {
		return domain.Failure(err)
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

	l.Debug().Float64("quality", quality).Msg("re-encoding image")

	return persist(ctx, dest, destPath, c.encoder, file, img, quality)
}
