package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

// wavHeaderSize is the size of an empty PCM WAV file; anything not larger
// holds no audio.
const wavHeaderSize = 44

var (
	ErrNoSpeech       = errors.New("no speech detected")
	ErrUnintelligible = errors.New("could not understand audio")
)

const (
	hintNoSpeech       = "I didn't hear anything. Please try again."
	hintUnintelligible = "Sorry, I didn't catch that."
	hintServiceError   = "Speech service error. Please try again."
)

// AudioListener records one utterance and transcribes it. Every recognition
// failure is reported to the user and returned as "".
type AudioListener struct {
	recorder    Recorder
	transcriber Transcriber
	out         io.Writer
	tempDir     string
	logger      zerolog.Logger
}

var _ contractx.Listener = (*AudioListener)(nil)

func NewAudioListener(recorder Recorder, transcriber Transcriber, out io.Writer, tempDir string, logger zerolog.Logger) (*AudioListener, error) {
	if recorder == nil {
		return nil, errors.New("recorder is required")
	}
	if transcriber == nil {
		return nil, errors.New("transcriber is required")
	}
	if out == nil {
		out = io.Discard
	}
	return &AudioListener{
		recorder:    recorder,
		transcriber: transcriber,
		out:         out,
		tempDir:     tempDir,
		logger:      logger,
	}, nil
}

func (l *AudioListener) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.logger.Info().Msg("listening")
	fmt.Fprintln(l.out, "Listening...")

	f, err := os.CreateTemp(l.tempDir, "utterance_*.wav")
	if err != nil {
		return "", fmt.Errorf("create utterance file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	text, err := l.recognize(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		l.report(err)
		return "", nil
	}

	l.logger.Info().Str("text", text).Msg("user said")
	fmt.Fprintf(l.out, "User: %s\n", text)
	return text, nil
}

func (l *AudioListener) recognize(ctx context.Context, path string) (string, error) {
	if err := l.recorder.Record(ctx, path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSpeech, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSpeech, err)
	}
	if info.Size() <= wavHeaderSize {
		return "", ErrNoSpeech
	}

	l.logger.Debug().Int64("bytes", info.Size()).Msg("processing speech")
	text, err := l.transcriber.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}

func (l *AudioListener) report(err error) {
	switch {
	case errors.Is(err, ErrNoSpeech):
		l.logger.Warn().Err(err).Msg("no speech detected")
		fmt.Fprintln(l.out, hintNoSpeech)
	case errors.Is(err, ErrUnintelligible):
		l.logger.Warn().Msg("could not understand audio")
		fmt.Fprintln(l.out, hintUnintelligible)
	default:
		l.logger.Error().Err(err).Msg("speech service error")
		fmt.Fprintln(l.out, hintServiceError)
	}
}

// AudioSpeaker synthesizes text into a scoped temp file and plays it.
// Synthesis and playback failures are logged; the turn goes on without audio.
type AudioSpeaker struct {
	synth   Synthesizer
	player  Player
	out     io.Writer
	tempDir string
	logger  zerolog.Logger
}

var _ contractx.Speaker = (*AudioSpeaker)(nil)

func NewAudioSpeaker(synth Synthesizer, player Player, out io.Writer, tempDir string, logger zerolog.Logger) (*AudioSpeaker, error) {
	if synth == nil {
		return nil, errors.New("synthesizer is required")
	}
	if player == nil {
		return nil, errors.New("player is required")
	}
	if out == nil {
		out = io.Discard
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &AudioSpeaker{
		synth:   synth,
		player:  player,
		out:     out,
		tempDir: tempDir,
		logger:  logger,
	}, nil
}

func (s *AudioSpeaker) Speak(ctx context.Context, text string) error {
	cleaned := CleanText(text)
	s.logger.Info().Str("text", cleaned).Msg("agent says")
	fmt.Fprintf(s.out, "AI: %s\n", cleaned)
	if cleaned == "" {
		return nil
	}

	filename := filepath.Join(s.tempDir, fmt.Sprintf("response_%s.mp3", uuid.NewString()[:8]))
	defer os.Remove(filename)

	if err := s.synthesizeTo(ctx, cleaned, filename); err != nil {
		return s.absorb(ctx, err, "tts error")
	}
	if err := s.player.Play(ctx, filename); err != nil {
		return s.absorb(ctx, err, "playback error")
	}
	return nil
}

func (s *AudioSpeaker) synthesizeTo(ctx context.Context, text, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = s.synth.Synthesize(ctx, text, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (s *AudioSpeaker) absorb(ctx context.Context, err error, msg string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s.logger.Error().Err(err).Msg(msg)
	fmt.Fprintf(s.out, "Error generating speech: %v\n", err)
	return nil
}
