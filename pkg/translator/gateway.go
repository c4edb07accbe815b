package translator

import "context"

// AudioResult is the structured transcription+translation returned for an
// audio blob. Fields are never empty: nulls from the model are replaced with
// sentinel placeholders.
type AudioResult struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// TranslationGateway is the external AI service boundary. Every call is a
// single attempt with no retry; a failure is terminal for that operation.
type TranslationGateway interface {
	Translate(ctx context.Context, text string, targetLang string) (string, error)
	ProcessAudio(ctx context.Context, audio []byte, mimeType string, targetLang string) (*AudioResult, error)
	Summarize(ctx context.Context, transcript string) (string, error)
}
