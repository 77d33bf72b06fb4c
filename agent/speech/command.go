package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Recorder captures one utterance into a WAV file at path.
type Recorder interface {
	Record(ctx context.Context, path string) error
}

// Player plays an audio file and returns when playback has finished.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Command runs an external program with {file} replaced by the target path.
// It serves both as Recorder (arecord, sox) and Player (ffplay, mpg123).
type Command struct {
	args []string
}

var (
	_ Recorder = (*Command)(nil)
	_ Player   = (*Command)(nil)
)

func ParseCommand(line string) (*Command, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil, errors.New("command is empty")
	}
	if !strings.Contains(line, filePlaceholder) {
		return nil, fmt.Errorf("command %q has no %s placeholder", args[0], filePlaceholder)
	}
	return &Command{args: args}, nil
}

func (c *Command) Record(ctx context.Context, path string) error {
	return c.run(ctx, path)
}

func (c *Command) Play(ctx context.Context, path string) error {
	return c.run(ctx, path)
}

func (c *Command) run(ctx context.Context, path string) error {
	args := make([]string, len(c.args))
	for i, a := range c.args {
		args[i] = strings.ReplaceAll(a, filePlaceholder, path)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}
