package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/promptlab/internal/config"
	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
	"github.com/phrazzld/promptlab/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// recordedCall captures the arguments of one GenerateContent call.
type recordedCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

// fakeModels is an in-memory contentGenerator.
type fakeModels struct {
	mu       sync.Mutex
	calls    []recordedCall
	response *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{model: model, contents: contents, config: cfg})
	return f.response, f.err
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:      "test-key",
		GeminiModel:       config.DefaultGeminiModel,
		GeminiImageModel:  config.DefaultGeminiImageModel,
		GeminiVisionModel: config.DefaultGeminiVisionModel,
	}
}

func newTestClient(t *testing.T, models *fakeModels) *Client {
	t.Helper()
	log, _ := logger.SetupTestLogger(t)
	return newClient(log, testConfig(), models)
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts, Role: genai.RoleModel},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	log, _ := logger.SetupTestLogger(t)

	tests := []struct {
		name   string
		mutate func(*config.LLMConfig)
		want   string
	}{
		{name: "empty api key", mutate: func(c *config.LLMConfig) { c.GeminiAPIKey = "" }, want: "API key"},
		{name: "empty text model", mutate: func(c *config.LLMConfig) { c.GeminiModel = "" }, want: "gemini model"},
		{name: "empty image model", mutate: func(c *config.LLMConfig) { c.GeminiImageModel = "" }, want: "image model"},
		{name: "empty vision model", mutate: func(c *config.LLMConfig) { c.GeminiVisionModel = "" }, want: "vision model"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tc.mutate(&cfg)

			client, err := NewClient(context.Background(), log, cfg)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient(context.Background(), nil, testConfig())
		assert.Error(t, err)
	})
}

func TestClient_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Gemini", newTestClient(t, &fakeModels{}).Name())
}

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	t.Run("user only", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(genai.NewPartFromText(`{"tone":"calm"}`))}
		client := newTestClient(t, models)

		text, err := client.Generate(context.Background(), generation.Request{User: "analyze this"})
		require.NoError(t, err)
		assert.Equal(t, `{"tone":"calm"}`, text)

		require.Len(t, models.calls, 1)
		call := models.calls[0]
		assert.Equal(t, config.DefaultGeminiModel, call.model)
		assert.Nil(t, call.config, "no system instruction means no config")
		require.Len(t, call.contents, 1)
		assert.Equal(t, "analyze this", call.contents[0].Parts[0].Text)
	})

	t.Run("system becomes system instruction", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(genai.NewPartFromText("ok"))}
		client := newTestClient(t, models)

		_, err := client.Generate(context.Background(), generation.Request{System: "be terse", User: "hi"})
		require.NoError(t, err)

		require.Len(t, models.calls, 1)
		require.NotNil(t, models.calls[0].config)
		require.NotNil(t, models.calls[0].config.SystemInstruction)
		assert.Equal(t, "be terse", models.calls[0].config.SystemInstruction.Parts[0].Text)
	})

	t.Run("concatenates parts and skips thoughts", func(t *testing.T) {
		t.Parallel()

		thought := genai.NewPartFromText("thinking...")
		thought.Thought = true
		models := &fakeModels{response: textResponse(
			genai.NewPartFromText("a bright "),
			thought,
			genai.NewPartFromText("garden"),
		)}

		text, err := newTestClient(t, models).Generate(context.Background(), generation.Request{User: "x"})
		require.NoError(t, err)
		assert.Equal(t, "a bright garden", text)
	})

	t.Run("empty request", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		_, err := newTestClient(t, models).Generate(context.Background(), generation.Request{User: "  "})
		require.Error(t, err)
		assert.Empty(t, models.calls, "no API call for empty content")
	})
}

func TestClient_Generate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		models   *fakeModels
		wantErr  error
		contains string
	}{
		{
			name:     "sdk error",
			models:   &fakeModels{err: errors.New("connection reset")},
			wantErr:  generation.ErrProviderCallFailed,
			contains: "connection reset",
		},
		{
			name:     "api error",
			models:   &fakeModels{err: genai.APIError{Code: 429, Message: "quota exceeded"}},
			wantErr:  generation.ErrProviderCallFailed,
			contains: "status 429",
		},
		{
			name:    "context canceled",
			models:  &fakeModels{err: context.Canceled},
			wantErr: context.Canceled,
		},
		{
			name:    "nil response",
			models:  &fakeModels{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "no candidates",
			models:  &fakeModels{response: &genai.GenerateContentResponse{}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name: "prompt blocked",
			models: &fakeModels{response: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "safety finish",
			models: &fakeModels{response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "nil content",
			models: &fakeModels{response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
			}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "whitespace text",
			models:  &fakeModels{response: textResponse(genai.NewPartFromText("  \n"))},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestClient(t, tc.models).Generate(context.Background(), generation.Request{User: "p"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestClient_GenerateImage(t *testing.T) {
	t.Parallel()

	t.Run("file uri wins", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(
			genai.NewPartFromBytes([]byte{1, 2, 3}, "image/jpeg"),
			genai.NewPartFromURI("https://files.example/img.png", "image/png"),
			genai.NewPartFromBytes([]byte{4, 5, 6}, "image/jpeg"),
		)}

		img, err := newTestClient(t, models).GenerateImage(context.Background(), "a red fox")
		require.NoError(t, err)
		assert.Equal(t, "https://files.example/img.png", img.Image)
		assert.Equal(t, config.DefaultGeminiImageModel, img.Model)
		assert.Equal(t, "a red fox", img.Prompt)
		assert.Equal(t, config.DefaultGeminiImageModel, models.calls[0].model)
	})

	t.Run("last inline part becomes data url", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(
			genai.NewPartFromText("here you go"),
			genai.NewPartFromBytes([]byte("first"), "image/jpeg"),
			genai.NewPartFromBytes([]byte("second"), ""),
		)}

		img, err := newTestClient(t, models).GenerateImage(context.Background(), "a red fox")
		require.NoError(t, err)
		assert.Equal(t, domain.DataURL([]byte("second"), "image/png"), img.Image)
	})

	t.Run("no image", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(genai.NewPartFromText("I cannot draw that"))}

		_, err := newTestClient(t, models).GenerateImage(context.Background(), "a red fox")
		assert.ErrorIs(t, err, generation.ErrNoImageReturned)
		assert.EqualError(t, err, "no image returned by Gemini")
	})

	t.Run("empty prompt", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		_, err := newTestClient(t, models).GenerateImage(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
		assert.Empty(t, models.calls)
	})
}

func TestClient_AnalyzeImage(t *testing.T) {
	t.Parallel()

	image := domain.ImageInput{Data: []byte("png-bytes"), MIMEType: "image/png"}

	t.Run("sends instruction, image and safety settings", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(genai.NewPartFromText("  A watercolor fox at dusk.  "))}

		text, err := newTestClient(t, models).AnalyzeImage(context.Background(), "describe", image)
		require.NoError(t, err)
		assert.Equal(t, "A watercolor fox at dusk.", text)

		require.Len(t, models.calls, 1)
		call := models.calls[0]
		assert.Equal(t, config.DefaultGeminiVisionModel, call.model)

		require.Len(t, call.contents, 1)
		parts := call.contents[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, "describe", parts[0].Text)
		require.NotNil(t, parts[1].InlineData)
		assert.Equal(t, image.Data, parts[1].InlineData.Data)
		assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)

		require.NotNil(t, call.config)
		require.Len(t, call.config.SafetySettings, 4)
		for _, s := range call.config.SafetySettings {
			assert.Equal(t, genai.HarmBlockThresholdBlockNone, s.Threshold)
		}
	})

	t.Run("no text", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{response: textResponse(genai.NewPartFromBytes([]byte{1}, "image/png"))}

		text, err := newTestClient(t, models).AnalyzeImage(context.Background(), "describe", image)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("empty image", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		_, err := newTestClient(t, models).AnalyzeImage(context.Background(), "describe", domain.ImageInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
		assert.Empty(t, models.calls)
	})
}

func TestNewClient_HTTPRoundTrip(t *testing.T) {
	t.Parallel()

	var gotKey, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"enhanced prompt"}]},"finishReason":"STOP"}]}`)
	}))
	defer server.Close()

	log, _ := logger.SetupTestLogger(t)
	client, err := NewClient(context.Background(), log, testConfig(),
		WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), generation.Request{System: "sys", User: "user text"})
	require.NoError(t, err)
	assert.Equal(t, "enhanced prompt", text)

	assert.Equal(t, "test-key", gotKey)
	assert.True(t, strings.HasSuffix(gotPath, config.DefaultGeminiModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, "contents")
	assert.Contains(t, gotBody, "systemInstruction")
}

func TestNewClient_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"Resource exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer server.Close()

	log, _ := logger.SetupTestLogger(t)
	client, err := NewClient(context.Background(), log, testConfig(),
		WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), generation.Request{User: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProviderCallFailed)
	assert.Contains(t, err.Error(), "429")
}
