package storage

import (
	"context"
	"testing"

	"imgbus/internal/core/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFile() *File {
	return &File{fs: afero.NewMemMapFs()}
}

func TestFileWriteThenReadRoundTrip(t *testing.T) {
	provider := newMemFile()
	ctx := context.Background()

	content := []byte{0xff, 0xd8, 0xff, 0x00, 0x01, 0x02}

	locator, err := provider.Write(ctx, "/images/out.jpg", &domain.ImageFile{
		Data:     content,
		Filename: "out.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "file:///images/out.jpg", locator)

	file, err := provider.Read(ctx, "/images/out.jpg")
	require.NoError(t, err)

	assert.Equal(t, content, file.Data, "round trip must be byte-identical")
	assert.Equal(t, "out.jpg", file.Filename)
	assert.Equal(t, "image/jpeg", file.ContentType)
}

func TestFileWriteCreatesParentDirectories(t *testing.T) {
	provider := newMemFile()

	_, err := provider.Write(context.Background(), "/a/b/c/out.png", &domain.ImageFile{
		Data: []byte("data"),
	})
	require.NoError(t, err)

	exists, err := afero.Exists(provider.fs, "/a/b/c/out.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileReadMissing(t *testing.T) {
	provider := newMemFile()

	_, err := provider.Read(context.Background(), "/nope.png")
	assert.Error(t, err)
}

// Storage access is not tied to the request context: a write issued
// while the caller's context is already cancelled still completes.
func TestFileWriteIgnoresCancelledContext(t *testing.T) {
	provider := newMemFile()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	locator, err := provider.Write(ctx, "/out.png", &domain.ImageFile{Data: []byte("data")})
	require.NoError(t, err)
	assert.Equal(t, "file:///out.png", locator)

	file, err := provider.Read(ctx, "/out.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), file.Data)
}

func TestFileOverwriteReplacesContent(t *testing.T) {
	provider := newMemFile()
	ctx := context.Background()

	_, err := provider.Write(ctx, "/out.png", &domain.ImageFile{Data: []byte("first")})
	require.NoError(t, err)
	_, err = provider.Write(ctx, "/out.png", &domain.ImageFile{Data: []byte("second")})
	require.NoError(t, err)

	file, err := provider.Read(ctx, "/out.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), file.Data)
}
