package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neon-transcriber/internal/app/api"
	oaiclient "neon-transcriber/internal/app/api/openai"
	"neon-transcriber/internal/app/api/provider"
)

// TestRemoteTranscriber_Transcribe tests the RemoteTranscriber implementation
func TestRemoteTranscriber_Transcribe(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  string
		mockStatus    int
		expectedText  string
		expectError   bool
		expectedCode  string
		errorContains string
	}{
		{
			name:         "successful transcription",
			mockResponse: `{"text": "This is a test transcription"}`,
			mockStatus:   http.StatusOK,
			expectedText: "This is a test transcription",
		},
		{
			name:         "successful transcription with special characters",
			mockResponse: `{"text": "Hello, 世界! This is a test with émojis 🎵"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Hello, 世界! This is a test with émojis 🎵",
		},
		{
			name:         "API error - unauthorized",
			mockResponse: `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:   http.StatusUnauthorized,
			expectError:  true,
			expectedCode: "authentication_failed",
		},
		{
			name:         "API error - rate limit",
			mockResponse: `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			mockStatus:   http.StatusTooManyRequests,
			expectError:  true,
			expectedCode: "rate_limit_exceeded",
		},
		{
			name:         "API error - payload too large",
			mockResponse: `{"error": {"message": "Maximum content size limit exceeded", "type": "invalid_request_error"}}`,
			mockStatus:   http.StatusRequestEntityTooLarge,
			expectError:  true,
			expectedCode: "file_too_large",
		},
		{
			name:          "API error - server error",
			mockResponse:  `{"error": {"message": "Internal server error", "type": "server_error"}}`,
			mockStatus:    http.StatusInternalServerError,
			expectError:   true,
			expectedCode:  "api_error",
			errorContains: "500",
		},
		{
			name:         "network error",
			mockStatus:   0, // hijack and close the connection
			expectError:  true,
			expectedCode: "unknown_error",
		},
		{
			name:         "invalid JSON response",
			mockResponse: `{"text": "incomplete JSON`,
			mockStatus:   http.StatusOK,
			expectError:  true,
			expectedCode: "unknown_error",
		},
		{
			name:         "empty transcription",
			mockResponse: `{"text": ""}`,
			mockStatus:   http.StatusOK,
			expectedText: "",
		},
		{
			name:         "transcription with line breaks",
			mockResponse: `{"text": "Line 1\nLine 2\nLine 3"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Line 1\nLine 2\nLine 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.mockStatus == 0 {
					hijacker, ok := w.(http.Hijacker)
					if ok {
						conn, _, _ := hijacker.Hijack()
						conn.Close()
						return
					}
				}

				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
				assert.Equal(t, http.MethodPost, r.Method)
				assert.True(t, strings.HasSuffix(r.URL.Path, "/audio/transcriptions"))
				assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

				assert.NoError(t, r.ParseMultipartForm(32<<20))
				assert.Equal(t, "whisper-1", r.FormValue("model"))

				file, header, err := r.FormFile("file")
				if assert.NoError(t, err) {
					defer file.Close()
					assert.Equal(t, "speech.wav", header.Filename)

					body, err := io.ReadAll(file)
					assert.NoError(t, err)
					assert.Equal(t, testWAVHeader(), body)
				}

				w.WriteHeader(tt.mockStatus)
				if tt.mockResponse != "" {
					w.Write([]byte(tt.mockResponse))
				}
			}))
			defer server.Close()

			rt := NewRemoteTranscriber(newTestClient(server.URL, 0))

			result, err := rt.Transcribe(context.Background(), api.AudioInput{
				Reader:   bytes.NewReader(testWAVHeader()),
				Filename: "speech.wav",
			})

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, provider.ErrorCode(err))
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, result)
		})
	}
}

func TestRemoteTranscriber_Options(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(32<<20))
		fmt.Fprintf(w, `{"text": "%s|%s|%s"}`, r.FormValue("model"), r.FormValue("language"), r.FormValue("prompt"))
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL, 0),
		WithModel("gpt-4o-mini-transcribe"),
		WithLanguage("de"),
		WithPrompt("Neon"),
	)
	assert.Equal(t, "gpt-4o-mini-transcribe", rt.Model())

	result, err := rt.Transcribe(context.Background(), api.AudioInput{
		Reader:   strings.NewReader("audio"),
		Filename: "a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini-transcribe|de|Neon", result)
}

func TestRemoteTranscriber_EmptyModelKeepsDefault(t *testing.T) {
	rt := NewRemoteTranscriber(openai.NewClient("k"), WithModel(""))
	assert.Equal(t, openai.Whisper1, rt.Model())
}

func TestRemoteTranscriber_NilReader(t *testing.T) {
	rt := NewRemoteTranscriber(openai.NewClient("test-api-key"))

	_, err := rt.Transcribe(context.Background(), api.AudioInput{Filename: "a.wav"})
	require.Error(t, err)
	assert.Equal(t, "invalid_input", provider.ErrorCode(err))
}

// TestRemoteTranscriber_Timeout tests request timeout handling
func TestRemoteTranscriber_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"text": "Should timeout"}`))
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL, 100*time.Millisecond))

	_, err := rt.Transcribe(context.Background(), api.AudioInput{
		Reader:   bytes.NewReader(testWAVHeader()),
		Filename: "audio.wav",
	})
	require.Error(t, err)
	assert.True(t,
		strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "deadline exceeded"),
		"expected timeout error, got: %v", err)
}

func TestRemoteTranscriber_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := rt.Transcribe(ctx, api.AudioInput{Reader: strings.NewReader("x"), Filename: "a.wav"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRemoteTranscriber_ConcurrentRequests tests concurrent transcription requests
func TestRemoteTranscriber_ConcurrentRequests(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		assert.NoError(t, r.ParseMultipartForm(32<<20))
		file, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		fmt.Fprintf(w, `{"text": "Transcription %s"}`, body)
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL, 0))

	numRequests := 5
	type result struct {
		index int
		text  string
		err   error
	}
	results := make(chan result, numRequests)

	for i := 0; i < numRequests; i++ {
		go func(index int) {
			text, err := rt.Transcribe(context.Background(), api.AudioInput{
				Reader:   strings.NewReader(fmt.Sprint(index)),
				Filename: "same.wav",
			})
			results <- result{index: index, text: text, err: err}
		}(i)
	}

	for i := 0; i < numRequests; i++ {
		select {
		case r := <-results:
			require.NoError(t, r.err)
			assert.Equal(t, fmt.Sprintf("Transcription %d", r.index), r.text)
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout waiting for concurrent requests")
		}
	}

	assert.Equal(t, int32(numRequests), atomic.LoadInt32(&requestCount))
}

func TestCreateOpenAIProvider(t *testing.T) {
	_, err := createOpenAIProvider(context.Background(), provider.Settings{})
	require.Error(t, err)

	tr, err := createOpenAIProvider(context.Background(), provider.Settings{APIKey: "sk-test", Model: "whisper-1"})
	require.NoError(t, err)
	rt, ok := tr.(*RemoteTranscriber)
	require.True(t, ok)
	assert.Equal(t, "whisper-1", rt.Model())
}

func newTestClient(serverURL string, timeout time.Duration) *openai.Client {
	return oaiclient.NewClient(oaiclient.ClientConfig{
		APIKey:  "test-api-key",
		BaseURL: serverURL + "/v1",
		Timeout: timeout,
	})
}

// testWAVHeader is a minimal valid audio file (WAV header)
func testWAVHeader() []byte {
	return []byte{
		0x52, 0x49, 0x46, 0x46, // "RIFF"
		0x24, 0x00, 0x00, 0x00, // File size
		0x57, 0x41, 0x56, 0x45, // "WAVE"
		0x66, 0x6D, 0x74, 0x20, // "fmt "
		0x10, 0x00, 0x00, 0x00, // Chunk size
		0x01, 0x00, // Audio format (PCM)
		0x01, 0x00, // Channels (mono)
		0x80, 0x3E, 0x00, 0x00, // Sample rate (16000)
		0x00, 0x7D, 0x00, 0x00, // Byte rate
		0x02, 0x00, // Block align
		0x10, 0x00, // Bits per sample
		0x64, 0x61, 0x74, 0x61, // "data"
		0x00, 0x00, 0x00, 0x00, // Data size
	}
}
