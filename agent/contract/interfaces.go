package contract

import "context"

// Generator turns a fully rendered prompt into agent text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Listener returns one user utterance. Recognition failures surface as "" with
// a nil error; a non-nil error means the input side itself is gone.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker voices agent text and blocks until playback completes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
