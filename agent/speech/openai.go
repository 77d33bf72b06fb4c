package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	openaisdk "github.com/openai/openai-go"
)

// Transcriber turns a recorded utterance into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Synthesizer writes spoken audio for text to w.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
}

type OpenAITranscriber struct {
	client   *openaisdk.Client
	model    string
	language string
}

var _ Transcriber = (*OpenAITranscriber)(nil)

func NewOpenAITranscriber(client *openaisdk.Client, model, language string) (*OpenAITranscriber, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	return &OpenAITranscriber{
		client:   client,
		model:    strings.TrimSpace(model),
		language: strings.TrimSpace(language),
	}, nil
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open utterance: %w", err)
	}
	defer f.Close()

	params := openaisdk.AudioTranscriptionNewParams{
		File:  f,
		Model: openaisdk.AudioModel(t.model),
	}
	if t.language != "" {
		params.Language = openaisdk.String(t.language)
	}

	res, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}

type OpenAISynthesizer struct {
	client *openaisdk.Client
	model  string
	voice  string
	speed  float64
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)

func NewOpenAISynthesizer(client *openaisdk.Client, model, voice string, speed float64) (*OpenAISynthesizer, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	return &OpenAISynthesizer{
		client: client,
		model:  strings.TrimSpace(model),
		voice:  strings.TrimSpace(voice),
		speed:  speed,
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, w io.Writer) error {
	params := openaisdk.AudioSpeechNewParams{
		Input:          text,
		Model:          openaisdk.SpeechModel(s.model),
		Voice:          openaisdk.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openaisdk.AudioSpeechNewParamsResponseFormatMP3,
	}
	if s.speed > 0 {
		params.Speed = openaisdk.Float(s.speed)
	}

	res, err := s.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	defer res.Body.Close()

	if _, err := io.Copy(w, res.Body); err != nil {
		return fmt.Errorf("read synthesized audio: %w", err)
	}
	return nil
}
