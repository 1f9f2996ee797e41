package dto

// TranscribeResponse is returned by POST /api/transcribe on success.
type TranscribeResponse struct {
	Transcription string `json:"transcription" example:"Hello and welcome to the show."`
}

// ErrorResponse documents the error body. Handlers emit it through
// errors.APIError, which serializes to the same shape.
type ErrorResponse struct {
	Error string `json:"error" example:"Transcription failed"`
}
