package operation

import (
	"context"
	"errors"
	"image"
	"sync"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/service"
)

func intp(i int) *int { return &i }

func floatp(f float64) *float64 { return &f }

// mockStorage is an in-memory provider recording every access.
type mockStorage struct {
	mu           sync.Mutex
	scheme       string
	files        map[string][]byte
	readCalls    int
	writeCalls   int
	readErr      error
	writeErr     error
	emptyLocator bool
}

func newMockStorage(scheme string) *mockStorage {
	return &mockStorage{scheme: scheme, files: make(map[string][]byte)}
}

func (m *mockStorage) Read(_ context.Context, path string) (*domain.ImageFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCalls++
	if m.readErr != nil {
		return nil, m.readErr
	}

	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}

	return &domain.ImageFile{Data: data, Filename: path, ContentType: "image/png"}, nil
}

func (m *mockStorage) Write(_ context.Context, path string, file *domain.ImageFile) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCalls++
	if m.writeErr != nil {
		return "", m.writeErr
	}
	if m.emptyLocator {
		return "", nil
	}

	m.files[path] = file.Data

	return m.scheme + "://" + path, nil
}

func (m *mockStorage) Close() {}

func (m *mockStorage) reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCalls
}

func (m *mockStorage) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCalls
}

// mockConverter satisfies both the Transformer and Encoder ports,
// recording the geometry it was asked for.
type mockConverter struct {
	mu          sync.Mutex
	width       int
	height      int
	decodeErr   error
	encodeErr   error
	scaledTo    []image.Point
	cropRects   []image.Rectangle
	encodedWith []float64
}

func (m *mockConverter) Decode(_ []byte) (image.Image, error) {
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}

	return image.NewRGBA(image.Rect(0, 0, m.width, m.height)), nil
}

func (m *mockConverter) Scale(_ image.Image, width, height int) image.Image {
	m.mu.Lock()
	m.scaledTo = append(m.scaledTo, image.Pt(width, height))
	m.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *mockConverter) Crop(_ image.Image, x, y, width, height int) image.Image {
	m.mu.Lock()
	m.cropRects = append(m.cropRects, image.Rect(x, y, x+width, y+height))
	m.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *mockConverter) Encode(_ image.Image, _ string, quality float64) ([]byte, error) {
	m.mu.Lock()
	m.encodedWith = append(m.encodedWith, quality)
	m.mu.Unlock()

	if m.encodeErr != nil {
		return nil, m.encodeErr
	}

	return []byte("encoded"), nil
}

// newTestResolver registers the given providers under their schemes.
func newTestResolver(providers ...*mockStorage) *service.ProviderRegistry {
	registry := service.NewProviderRegistry()
	for _, provider := range providers {
		registry.Register(provider.scheme, provider)
	}

	return registry
}
