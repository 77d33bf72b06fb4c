package speech

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

const (
	ModeText  = "text"
	ModeAudio = "audio"

	filePlaceholder = "{file}"
)

type Config struct {
	Mode          string        `envconfig:"MODE" split_words:"true" default:"text"`
	APIKey        string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL       string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	Language      string        `envconfig:"LANGUAGE" split_words:"true" default:"en-IN"`
	STTModel      string        `envconfig:"STT_MODEL" split_words:"true" default:"whisper-1"`
	TTSModel      string        `envconfig:"TTS_MODEL" split_words:"true" default:"tts-1"`
	Voice         string        `envconfig:"VOICE" split_words:"true" default:"alloy"`
	Speed         float64       `envconfig:"SPEED" split_words:"true" default:"1.0"`
	RecordCommand string        `envconfig:"RECORD_COMMAND" split_words:"true" default:"arecord -q -f S16_LE -r 16000 -c 1 -d 8 {file}"`
	PlayCommand   string        `envconfig:"PLAY_COMMAND" split_words:"true" default:"ffplay -nodisp -autoexit -loglevel quiet {file}"`
	TempDir       string        `envconfig:"TEMP_DIR" split_words:"true"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case ModeText:
		return nil
	case ModeAudio:
	default:
		return fmt.Errorf("%w: speech mode must be %q or %q, got %q", contractx.ErrValidation, ModeText, ModeAudio, c.Mode)
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: speech api key is required in audio mode", contractx.ErrValidation)
	}
	if !strings.Contains(c.RecordCommand, filePlaceholder) {
		return fmt.Errorf("%w: record command must contain %s", contractx.ErrValidation, filePlaceholder)
	}
	if !strings.Contains(c.PlayCommand, filePlaceholder) {
		return fmt.Errorf("%w: play command must contain %s", contractx.ErrValidation, filePlaceholder)
	}
	return nil
}

// LanguageCode turns a locale such as "en-IN" into the ISO-639-1 code the
// speech APIs expect.
func (c Config) LanguageCode() string {
	lang, _, _ := strings.Cut(strings.TrimSpace(c.Language), "-")
	return strings.ToLower(lang)
}
