package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
)

// MockImageGenerator implements generation.ImageGenerator for testing.
type MockImageGenerator struct {
	GenerateImageFn func(ctx context.Context, prompt string) (*domain.GeneratedImage, error)

	Image *domain.GeneratedImage
	Err   error

	mu      sync.Mutex
	prompts []string
}

// GenerateImage implements generation.ImageGenerator.
func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, prompt)
	}
	return m.Image, m.Err
}

// Prompts returns every prompt passed to GenerateImage.
func (m *MockImageGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockImageAnalyzer implements generation.ImageAnalyzer for testing.
type MockImageAnalyzer struct {
	AnalyzeImageFn func(ctx context.Context, instruction string, image domain.ImageInput) (string, error)

	Text string
	Err  error

	mu           sync.Mutex
	instructions []string
	images       []domain.ImageInput
}

// AnalyzeImage implements generation.ImageAnalyzer.
func (m *MockImageAnalyzer) AnalyzeImage(ctx context.Context, instruction string, image domain.ImageInput) (string, error) {
	m.mu.Lock()
	m.instructions = append(m.instructions, instruction)
	m.images = append(m.images, image)
	m.mu.Unlock()

	if m.AnalyzeImageFn != nil {
		return m.AnalyzeImageFn(ctx, instruction, image)
	}
	return m.Text, m.Err
}

// CallCount returns how many times AnalyzeImage was called.
func (m *MockImageAnalyzer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instructions)
}

// Instructions returns every instruction passed to AnalyzeImage.
func (m *MockImageAnalyzer) Instructions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.instructions...)
}

// Images returns every image passed to AnalyzeImage.
func (m *MockImageAnalyzer) Images() []domain.ImageInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ImageInput(nil), m.images...)
}

var (
	_ generation.ImageGenerator = (*MockImageGenerator)(nil)
	_ generation.ImageAnalyzer  = (*MockImageAnalyzer)(nil)
)
