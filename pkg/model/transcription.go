package model

import "fmt"

// ModelID selects the recognition backend. The service validates it.
type ModelID string

const (
	ModelCloudflareWhisper     ModelID = "cloudflare.whisper"
	ModelOpenAIWhisper1        ModelID = "openai.whisper-1"
	ModelOpenAIGPT4oTranscribe ModelID = "openai.gpt-4o-transcribe"
	ModelDeepgramNova2         ModelID = "deepgram.nova-2"
	ModelAssemblyAIBest        ModelID = "assemblyai.best"
	ModelGroqWhisperLargeV3    ModelID = "groq.whisper-large-v3"
	ModelElevenLabsScribeV1    ModelID = "elevenlabs.scribe-v1"
)

type LanguageCode string

const LanguageAuto LanguageCode = "auto"

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatSRT  OutputFormat = "srt"
	OutputFormatVTT  OutputFormat = "vtt"
	OutputFormatJSON OutputFormat = "json"
)

func (f OutputFormat) Valid() bool {
	switch f {
	case OutputFormatText, OutputFormatSRT, OutputFormatVTT, OutputFormatJSON:
		return true
	}
	return false
}

type SubtitleFormat string

const (
	SubtitleFormatSRT SubtitleFormat = "srt"
	SubtitleFormatVTT SubtitleFormat = "vtt"
)

func (f SubtitleFormat) OutputFormat() (OutputFormat, error) {
	switch f {
	case SubtitleFormatSRT:
		return OutputFormatSRT, nil
	case SubtitleFormatVTT:
		return OutputFormatVTT, nil
	}
	return "", WrapKind(ErrInvalidRequest, fmt.Errorf("unsupported subtitle format %q", string(f)))
}

// TranscriptionResponse is the JSON body returned for output_format=json.
// It is either TranscriptionOnlyText or *TranscriptionDetailed.
type TranscriptionResponse interface {
	isTranscriptionResponse()
}

type TranscriptionOnlyText struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type TranscriptionDetailed struct {
	ID       string              `json:"id"`
	Text     string              `json:"text"`
	Language string              `json:"language,omitempty"`
	Duration *float64            `json:"duration,omitempty"`
	Segments []TranscriptSegment `json:"segments,omitempty"`
	Words    []TimestampedWord   `json:"words,omitempty"`
	Metadata map[string]any      `json:"provider_metadata,omitempty"`
}

type TranscriptSegment struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	Speaker    string   `json:"speaker,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// TimestampedWord times are seconds from the start of the audio.
type TimestampedWord struct {
	Word       string   `json:"word"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence,omitempty"`
	Speaker    string   `json:"speaker,omitempty"`
}

func (TranscriptionOnlyText) isTranscriptionResponse()  {}
func (*TranscriptionDetailed) isTranscriptionResponse() {}

// TranscriptionResult is what a request materializes, one variant per
// OutputFormat: PlainText, Subtitles or *TranscriptionDetailed.
type TranscriptionResult interface {
	isTranscriptionResult()
}

type PlainText string

type Subtitles struct {
	Format SubtitleFormat
	Text   string
}

func (PlainText) isTranscriptionResult()              {}
func (Subtitles) isTranscriptionResult()              {}
func (*TranscriptionDetailed) isTranscriptionResult() {}

// ResultMatchesFormat reports whether result is the variant format produces.
func ResultMatchesFormat(result TranscriptionResult, format OutputFormat) bool {
	switch r := result.(type) {
	case PlainText:
		return format == OutputFormatText
	case Subtitles:
		return string(r.Format) == string(format) && (format == OutputFormatSRT || format == OutputFormatVTT)
	case *TranscriptionDetailed:
		return r != nil && format == OutputFormatJSON
	}
	return false
}

// TranscriptionRequest is the shared shape behind every public operation.
type TranscriptionRequest struct {
	FilePath     string
	Model        ModelID
	OutputFormat OutputFormat
	Options      []RequestOption
}
