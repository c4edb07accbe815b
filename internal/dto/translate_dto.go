package dto

// Wire shapes for the spec-pinned AI endpoints. These are plain objects, not
// the enveloped responses the v1 routes use.

type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

type TranslateResponse struct {
	Translation string `json:"translation"`
}

type SummarizeRequest struct {
	ConversationId string `json:"conversationId"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type ProcessAudioResponse struct {
	Text        string  `json:"text"`
	Translation string  `json:"translation"`
	AudioUrl    *string `json:"audio_url,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
