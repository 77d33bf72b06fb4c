package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	llmx "github.com/tanpawarit/hinglish-coldcall-agent/agent/llm"
	speechx "github.com/tanpawarit/hinglish-coldcall-agent/agent/speech"
	configx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/config"
	logx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/logger"
	openrouterx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/openrouter"
)

type rootOptions struct {
	envFile    string
	speechMode string
	debug      bool
}

type app struct {
	opts rootOptions

	newGenerator    func(ctx context.Context, scenario contractx.Scenario) (contractx.Generator, error)
	newSpeech       func(in *bufio.Reader, out io.Writer) (contractx.Listener, contractx.Speaker, error)
	farewellTimeout time.Duration
}

func wireApp() *app {
	a := &app{farewellTimeout: 30 * time.Second}
	a.newGenerator = a.wireGenerator
	a.newSpeech = a.wireSpeech
	return a
}

func (a *app) wireGenerator(ctx context.Context, scenario contractx.Scenario) (contractx.Generator, error) {
	cfg, err := configx.New[llmx.Config]("LLM")
	if err != nil {
		return nil, fmt.Errorf("load llm config: %w", err)
	}
	return llmx.NewGenerator(ctx, *cfg, scenario)
}

func (a *app) wireSpeech(in *bufio.Reader, out io.Writer) (contractx.Listener, contractx.Speaker, error) {
	cfg, err := configx.New[speechx.Config]("SPEECH")
	if err != nil {
		return nil, nil, fmt.Errorf("load speech config: %w", err)
	}
	if a.opts.speechMode != "" {
		cfg.Mode = a.opts.speechMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Mode), speechx.ModeText) {
		console := speechx.NewConsole(in, out)
		return console, console, nil
	}

	client := openrouterx.NewClient(openrouterx.ClientConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	recorder, err := speechx.ParseCommand(cfg.RecordCommand)
	if err != nil {
		return nil, nil, fmt.Errorf("record command: %w", err)
	}
	player, err := speechx.ParseCommand(cfg.PlayCommand)
	if err != nil {
		return nil, nil, fmt.Errorf("play command: %w", err)
	}
	transcriber, err := speechx.NewOpenAITranscriber(client, cfg.STTModel, cfg.LanguageCode())
	if err != nil {
		return nil, nil, err
	}
	synth, err := speechx.NewOpenAISynthesizer(client, cfg.TTSModel, cfg.Voice, cfg.Speed)
	if err != nil {
		return nil, nil, err
	}

	logger := logx.Component("speech")
	listener, err := speechx.NewAudioListener(recorder, transcriber, out, cfg.TempDir, logger)
	if err != nil {
		return nil, nil, err
	}
	speaker, err := speechx.NewAudioSpeaker(synth, player, out, cfg.TempDir, logger)
	if err != nil {
		return nil, nil, err
	}
	return listener, speaker, nil
}
