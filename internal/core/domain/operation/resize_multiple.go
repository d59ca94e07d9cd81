package operation

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

// ResizeMultiple reads and decodes the source once, then fans out one
// independent transform-and-write task per destination. A join counter
// guarantees exactly one aggregated reply once all tasks reached a
// terminal outcome; a single failing or skipped destination never
// aborts its siblings.
type ResizeMultiple struct {
	resolver    port.Resolver
	transformer port.Transformer
	encoder     port.Encoder
}

func NewResizeMultiple(resolver port.Resolver, transformer port.Transformer, encoder port.Encoder) *ResizeMultiple {
	return &ResizeMultiple{resolver: resolver, transformer: transformer, encoder: encoder}
}

func (r *ResizeMultiple) GetAction() string {
	return "resizeMultiple"
}

func (r *ResizeMultiple) Execute(ctx context.Context, request *domain.Request) *domain.Reply {
	l := log.With().
		Str("action", r.GetAction()).
		Str("src", request.Src).
		Int("destinations", len(request.Destinations)).
		Logger()

	quality, err := requestQuality(request.Quality)
	if err != nil {
		return domain.Failure(err)
	}

	if len(request.Destinations) == 0 {
		return domain.Failure(domain.ErrInvalidOutputs)
	}

	src, srcPath, err := r.resolver.Resolve(request.Src)
	if err != nil {
		return domain.Failure(err)
	}

	file, err := src.Read(ctx, srcPath)
	if err != nil {
		l.Warn().Err(err).Msg("failed to read source image")
		return domain.Failure(domain.ErrNotFound(err))
	}

	// Decoded once, shared read-only by every destination task.
	img, err := r.transformer.Decode(file.Data)
	if err != nil {
		l.Error().Err(err).Msg("failed to decode source image")
		return domain.Failure(domain.ErrProcessing(err))
	}

	var pending atomic.Int32
	pending.Store(int32(len(request.Destinations)))

	var mu sync.Mutex
	outputs := make(map[string]string)

	reply := make(chan *domain.Reply, 1)

	for _, destination := range request.Destinations {
		go func(destination domain.Destination) {
			locator := r.renderDestination(ctx, file, img, destination, quality)

			mu.Lock()
			if locator != "" {
				outputs[destinationKey(destination)] = locator
			}
			mu.Unlock()

			// Every task decrements exactly once; whichever reaches
			// zero finalizes the reply.
			if pending.Add(-1) == 0 {
				mu.Lock()
				defer mu.Unlock()
				if len(outputs) > 0 {
					reply <- domain.WrittenAll(outputs)
				} else {
					reply <- domain.Failure(domain.ErrResizeFailed)
				}
			}
		}(destination)
	}

	return <-reply
}

// renderDestination resizes, encodes and writes one destination,
// returning the written locator or "" when the destination was skipped
// or failed.
func (r *ResizeMultiple) renderDestination(ctx context.Context, file *domain.ImageFile,
	img image.Image, destination domain.Destination, quality float64) string {
	l := log.With().Str("dest", destination.Dest).Logger()

	dest, destPath, err := r.resolver.Resolve(destination.Dest)
	if err != nil {
		l.Warn().Err(err).Msg("skipping unresolvable destination")
		return ""
	}

	bounds := img.Bounds()

	plan, err := domain.ResizePlan(bounds.Dx(), bounds.Dy(),
		destination.Width, destination.Height, destination.Stretch)
	if err != nil {
		l.Warn().Err(err).Msg("skipping destination without dimensions")
		return ""
	}

	resized := r.transformer.Scale(img, plan.ScaleWidth, plan.ScaleHeight)
	if plan.Crop {
		resized = r.transformer.Crop(resized, plan.CropX, plan.CropY, plan.CropWidth, plan.CropHeight)
	}

	result := persist(ctx, dest, destPath, r.encoder, file, resized, quality)
	if result.Status != "ok" {
		l.Warn().Str("message", result.Message).Msg("destination failed")
		return ""
	}

	return result.Output
}

// destinationKey builds the reply map key from the requested
// dimensions, absent values defaulting to 0.
func destinationKey(destination domain.Destination) string {
	width, height := 0, 0
	if destination.Width != nil {
		width = *destination.Width
	}
	if destination.Height != nil {
		height = *destination.Height
	}

	return fmt.Sprintf("%dx%d", width, height)
}
