package operation

import (
	"context"
	"image"
	"testing"

	"imgbus/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropValidation(t *testing.T) {
	tests := []struct {
		name    string
		request *domain.Request
		want    string
	}{
		{
			name: "missing width is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg", Height: intp(10),
			},
			want: "Invalid size.",
		},
		{
			name: "missing height is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg", Width: intp(10),
			},
			want: "Invalid size.",
		},
		{
			name: "invalid quality is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg",
				Width: intp(10), Height: intp(10), Quality: floatp(-0.1),
			},
			want: "Invalid quality.",
		},
		{
			name: "negative width is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg",
				Width: intp(-10), Height: intp(10),
			},
			want: "Invalid size.",
		},
		{
			name: "zero height is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg",
				Width: intp(10), Height: intp(0),
			},
			want: "Invalid size.",
		},
		{
			name: "negative offset is rejected",
			request: &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg",
				X: -1, Width: intp(3), Height: intp(3),
			},
			want: "Invalid size.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMockStorage("file")
			converter := &mockConverter{width: 5, height: 5}
			crop := NewCrop(newTestResolver(files), converter, converter)

			reply := crop.Execute(context.Background(), tt.request)

			assert.Equal(t, "error", reply.Status)
			assert.Equal(t, tt.want, reply.Message)
			assert.Zero(t, files.reads())
			assert.Zero(t, files.writes())
		})
	}
}

func TestCropSourceTooSmall(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		w, h int
	}{
		{name: "region wider than source", w: 10, h: 3},
		{name: "region taller than source", w: 3, h: 10},
		{name: "offset pushes region past the right edge", x: 3, w: 3, h: 3},
		{name: "offset pushes region past the bottom edge", y: 3, w: 3, h: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newMockStorage("file")
			files.files["/a.png"] = []byte("tiny")
			converter := &mockConverter{width: 5, height: 5}
			crop := NewCrop(newTestResolver(files), converter, converter)

			reply := crop.Execute(context.Background(), &domain.Request{
				Src: "file:///a.png", Dest: "file:///b.jpg",
				X: tt.x, Y: tt.y, Width: intp(tt.w), Height: intp(tt.h),
			})

			assert.Equal(t, "error", reply.Status)
			assert.Equal(t, "Source image too small for crop.", reply.Message)
			assert.Zero(t, files.writes(), "rejected crops must not attempt a write")
		})
	}
}

func TestCropExtractsRegion(t *testing.T) {
	files := newMockStorage("file")
	files.files["/a.png"] = []byte("source")
	converter := &mockConverter{width: 200, height: 100}
	crop := NewCrop(newTestResolver(files), converter, converter)

	reply := crop.Execute(context.Background(), &domain.Request{
		Src: "file:///a.png", Dest: "file:///b.jpg",
		X: 20, Y: 10, Width: intp(50), Height: intp(40),
	})

	require.Equal(t, "ok", reply.Status)
	assert.Equal(t, "file:///b.jpg", reply.Output)

	assert.Empty(t, converter.scaledTo, "crop must not resample")
	require.Len(t, converter.cropRects, 1)
	assert.Equal(t, image.Rect(20, 10, 70, 50), converter.cropRects[0])
}
