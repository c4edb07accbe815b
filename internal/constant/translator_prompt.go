package constant

// Prompts sent to the Gemini gateway. %s placeholders are filled by
// pkg/translator.

const TranslatePromptTemplate = `You are a medical translator. Translate the following text into %s. Only return the translated text, nothing else.

Text: "%s"`

const ProcessAudioPromptTemplate = `You are a medical translator.
1. Transcribe the audio file exactly as spoken.
2. Translate the transcription into %s.
3. If the audio is silent or unclear, return null for both.

Return a JSON object with this schema:
{
  "text": "original transcription here",
  "translation": "translated text here"
}`

const SummarizePromptTemplate = `You are an expert medical scribe. Summarize this consultation.

TRANSCRIPT:
%s

OUTPUT FORMAT (Markdown):
## Chief Complaint
(Why they are here)
## Symptoms
(List of symptoms)
## Diagnosis
(If applicable)
## Plan
(Next steps)`
