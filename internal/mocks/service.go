package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/promptlab/internal/domain"
)

// MockTextEnhancer implements api.TextEnhancer for testing.
type MockTextEnhancer struct {
	EnhanceFn func(ctx context.Context, prompt string) (*domain.Enhancement, error)

	mu      sync.Mutex
	prompts []string
}

// Enhance records prompt and delegates to EnhanceFn.
func (m *MockTextEnhancer) Enhance(ctx context.Context, prompt string) (*domain.Enhancement, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.EnhanceFn != nil {
		return m.EnhanceFn(ctx, prompt)
	}
	return nil, nil
}

// Prompts returns every prompt passed to Enhance.
func (m *MockTextEnhancer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockImageProcessor implements api.ImageProcessor for testing.
type MockImageProcessor struct {
	GenerateImageFn func(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
	AnalyzeImageFn  func(ctx context.Context, image domain.ImageInput) (string, error)

	mu       sync.Mutex
	prompts  []string
	analyzed []domain.ImageInput
}

// GenerateImage records prompt and delegates to GenerateImageFn.
func (m *MockImageProcessor) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, prompt)
	}
	return nil, nil
}

// AnalyzeImage records image and delegates to AnalyzeImageFn.
func (m *MockImageProcessor) AnalyzeImage(ctx context.Context, image domain.ImageInput) (string, error) {
	m.mu.Lock()
	m.analyzed = append(m.analyzed, image)
	m.mu.Unlock()

	if m.AnalyzeImageFn != nil {
		return m.AnalyzeImageFn(ctx, image)
	}
	return "", nil
}

// GeneratePrompts returns every prompt passed to GenerateImage.
func (m *MockImageProcessor) GeneratePrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// AnalyzedImages returns every image passed to AnalyzeImage.
func (m *MockImageProcessor) AnalyzedImages() []domain.ImageInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ImageInput(nil), m.analyzed...)
}
