// Package testutil provides test doubles shared by the handler, server and
// CLI tests.
//
// MockTranscriber implements api.Transcriber. Behaviour is keyed by the
// uploaded bytes rather than the filename, which lets tests send several
// uploads with the same name and still give each one its own response or
// latency:
//
//	mockTranscriber := testutil.NewMockTranscriber().
//	    WithResponse("first", "one").
//	    WithLatency("first", 50*time.Millisecond).
//	    WithError("broken", errors.New("upstream down"))
//
// When testify expectations are registered with On("Transcribe", ...), they
// take precedence over the configured maps:
//
//	mockTranscriber.On("Transcribe", mock.Anything, "speech.wav").Return("hi", nil)
//
// CallHistory records the filename, media type, content and, when the reader
// is a file, the path it was read from. Tests use the path to check that
// temporary files are gone after the request.
//
// All methods are safe for concurrent use.
package testutil
