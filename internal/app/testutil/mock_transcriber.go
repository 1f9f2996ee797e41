package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"neon-transcriber/internal/app/api"
)

// MockTranscriber is a configurable api.Transcriber for handler and CLI tests.
// Responses, errors and latencies are keyed by the uploaded content, so two
// uploads with the same filename can still be told apart.
type MockTranscriber struct {
	mock.Mock
	mu sync.RWMutex

	DefaultLatency  time.Duration
	DefaultError    error
	DefaultResponse string

	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string
	LatencyMap  map[string]time.Duration
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	Filename   string
	MediaType  string
	Content    string
	SourcePath string
	Timestamp  time.Time
	Duration   time.Duration
	Response   string
	Error      error
}

// NewMockTranscriber creates a new MockTranscriber with no latency that
// echoes a fixed response.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ErrorMap:        make(map[string]error),
		ResponseMap:     make(map[string]string),
		LatencyMap:      make(map[string]time.Duration),
	}
}

var _ api.Transcriber = (*MockTranscriber)(nil)

// Transcribe implements api.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio api.AudioInput) (string, error) {
	start := time.Now()

	call := TranscriptionCall{
		Filename:  audio.Filename,
		MediaType: audio.MediaType,
		Timestamp: start,
	}
	if named, ok := audio.Reader.(interface{ Name() string }); ok {
		call.SourcePath = named.Name()
	}

	var content []byte
	if audio.Reader != nil {
		var err error
		content, err = io.ReadAll(audio.Reader)
		if err != nil {
			return "", fmt.Errorf("mock read failed: %w", err)
		}
	}
	call.Content = string(content)

	m.mu.RLock()
	latency := m.DefaultLatency
	if custom, ok := m.LatencyMap[call.Content]; ok {
		latency = custom
	}
	injected, hasErr := m.ErrorMap[call.Content]
	if !hasErr && m.DefaultError != nil {
		injected, hasErr = m.DefaultError, true
	}
	response, hasResponse := m.ResponseMap[call.Content]
	if !hasResponse {
		response = m.DefaultResponse
	}
	hasExpectations := len(m.ExpectedCalls) > 0
	m.mu.RUnlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			call.Error = ctx.Err()
			m.record(call, start)
			return "", ctx.Err()
		}
	}

	if hasExpectations {
		args := m.Called(ctx, audio.Filename)
		response, injected = args.String(0), args.Error(1)
		hasErr = injected != nil
	}

	if hasErr {
		call.Error = injected
		m.record(call, start)
		return "", injected
	}

	call.Response = response
	m.record(call, start)
	return response, nil
}

func (m *MockTranscriber) record(call TranscriptionCall, start time.Time) {
	call.Duration = time.Since(start)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallHistory = append(m.CallHistory, call)
}

// WithDefaultLatency sets the latency applied to every call
func (m *MockTranscriber) WithDefaultLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = latency
	return m
}

// WithDefaultError makes every call fail with err
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithDefaultResponse sets the default response text
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// WithResponse returns response for uploads whose bytes equal content.
func (m *MockTranscriber) WithResponse(content, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[content] = response
	return m
}

// WithError fails uploads whose bytes equal content.
func (m *MockTranscriber) WithError(content string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[content] = err
	return m
}

// WithLatency delays uploads whose bytes equal content.
func (m *MockTranscriber) WithLatency(content string, latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatencyMap[content] = latency
	return m
}

// History returns a copy of the call history.
func (m *MockTranscriber) History() []TranscriptionCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]TranscriptionCall, len(m.CallHistory))
	copy(calls, m.CallHistory)
	return calls
}

// CallCount returns the number of completed calls.
func (m *MockTranscriber) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.CallHistory)
}

// Reset clears the call history and all configured behaviour.
func (m *MockTranscriber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallHistory = nil
	m.ErrorMap = make(map[string]error)
	m.ResponseMap = make(map[string]string)
	m.LatencyMap = make(map[string]time.Duration)
	m.DefaultError = nil
	m.ExpectedCalls = nil
	m.Mock.Calls = nil
}
