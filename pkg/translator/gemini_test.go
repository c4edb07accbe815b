package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"meditranslate-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func candidateResponse(text string) []byte {
	body, _ := json.Marshal(GeminiChatResponse{
		Candidates: []*GeminiChatCandidate{
			{
				Content: &GeminiChatContent{
					Parts: []*GeminiChatParts{{Text: text}},
				},
			},
		},
	})
	return body
}

func TestTranslate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq GeminiChatRequest

	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(candidateResponse("Hola mundo"))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "gemini-2.5-flash")
	translation, err := gw.Translate(context.Background(), "Hello world", "Spanish")

	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", translation)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotReq.Contents, 1)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Spanish")
	assert.Contains(t, prompt, `"Hello world"`)
}

func TestTranslate_StatusError(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "quota exceeded"}`))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	_, err := gw.Translate(context.Background(), "Hello", "Spanish")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestTranslate_EmptyCandidates(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	_, err := gw.Translate(context.Background(), "Hello", "Spanish")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty candidates")
}

func TestProcessAudio(t *testing.T) {
	var gotReq GeminiChatRequest
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(candidateResponse(`{"text": "hola doctor", "translation": "hello doctor"}`))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	result, err := gw.ProcessAudio(context.Background(), []byte{0x1a, 0x45}, "audio/webm", "English")

	require.NoError(t, err)
	assert.Equal(t, "hola doctor", result.Text)
	assert.Equal(t, "hello doctor", result.Translation)

	// The audio travels inline next to the prompt, and JSON mode is on.
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 2)
	require.NotNil(t, gotReq.Contents[0].Parts[0].InlineData)
	assert.Equal(t, "audio/webm", gotReq.Contents[0].Parts[0].InlineData.MimeType)
	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
}

func TestProcessAudio_NullFieldsBecomeSentinels(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(`{"text": null, "translation": null}`))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	result, err := gw.ProcessAudio(context.Background(), []byte{0x1a}, "audio/webm", "English")

	require.NoError(t, err)
	assert.Equal(t, constant.UnintelligibleSentinel, result.Text)
	assert.Equal(t, constant.NoTranslationSentinel, result.Translation)
}

func TestProcessAudio_FencedJSON(t *testing.T) {
	fenced := "```json\n{\"text\": \"hola\", \"translation\": \"hello\"}\n```"
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(fenced))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	result, err := gw.ProcessAudio(context.Background(), []byte{0x1a}, "audio/webm", "English")

	require.NoError(t, err)
	assert.Equal(t, "hola", result.Text)
	assert.Equal(t, "hello", result.Translation)
}

func TestProcessAudio_DefaultMimeType(t *testing.T) {
	var gotReq GeminiChatRequest
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(candidateResponse(`{"text": "a", "translation": "b"}`))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	_, err := gw.ProcessAudio(context.Background(), []byte{0x1a}, "", "English")

	require.NoError(t, err)
	assert.Equal(t, "audio/webm", gotReq.Contents[0].Parts[0].InlineData.MimeType)
}

func TestSummarize(t *testing.T) {
	var gotReq GeminiChatRequest
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write(candidateResponse("## Chief Complaint\nHeadache"))
	})

	gw := NewGeminiGateway(server.URL, "test-key", "")
	summary, err := gw.Summarize(context.Background(), "DOCTOR: Hello\nPATIENT: My head hurts")

	require.NoError(t, err)
	assert.Equal(t, "## Chief Complaint\nHeadache", summary)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "PATIENT: My head hurts")
}

func TestTrimJSONFence(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(trimJSONFence([]byte(tc.input))))
		})
	}
}
