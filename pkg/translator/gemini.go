package translator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"meditranslate-be/internal/constant"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiChatParts struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type GeminiChatRequest struct {
	Contents         []*GeminiChatContent    `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

// GeminiGateway implements TranslationGateway over the generateContent REST
// endpoint.
type GeminiGateway struct {
	BaseURL string
	Model   string

	apiKey string
	client *http.Client
}

func NewGeminiGateway(baseURL, apiKey, model string) *GeminiGateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGateway{
		BaseURL: baseURL,
		Model:   model,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (g *GeminiGateway) Translate(ctx context.Context, text string, targetLang string) (string, error) {
	prompt := fmt.Sprintf(constant.TranslatePromptTemplate, targetLang, text)

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{{Text: prompt}},
				Role:  "user",
			},
		},
	}

	return g.generate(ctx, payload)
}

func (g *GeminiGateway) ProcessAudio(ctx context.Context, audio []byte, mimeType string, targetLang string) (*AudioResult, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	prompt := fmt.Sprintf(constant.ProcessAudioPromptTemplate, targetLang)

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{
					{
						InlineData: &GeminiInlineData{
							MimeType: mimeType,
							Data:     base64.StdEncoding.EncodeToString(audio),
						},
					},
					{Text: prompt},
				},
				Role: "user",
			},
		},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	raw, err := g.generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	// JSON mode still occasionally wraps the object in a markdown fence.
	cleaned := trimJSONFence([]byte(raw))

	var parsed struct {
		Text        *string `json:"text"`
		Translation *string `json:"translation"`
	}
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return nil, fmt.Errorf("parse error: %w | raw: %s", err, string(cleaned))
	}

	result := &AudioResult{
		Text:        constant.UnintelligibleSentinel,
		Translation: constant.NoTranslationSentinel,
	}
	if parsed.Text != nil && *parsed.Text != "" {
		result.Text = *parsed.Text
	}
	if parsed.Translation != nil && *parsed.Translation != "" {
		result.Translation = *parsed.Translation
	}
	return result, nil
}

func (g *GeminiGateway) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(constant.SummarizePromptTemplate, transcript)

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{{Text: prompt}},
				Role:  "user",
			},
		},
	}

	return g.generate(ctx, payload)
}

func (g *GeminiGateway) generate(ctx context.Context, payload GeminiChatRequest) (string, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, g.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in gemini response: %s", string(resBody))
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

func trimJSONFence(b []byte) []byte {
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
