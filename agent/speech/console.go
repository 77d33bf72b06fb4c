package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

var (
	_ contractx.Listener = (*Console)(nil)
	_ contractx.Speaker  = (*Console)(nil)
)

// Console is the text-mode SpeechIO: typed lines in, printed lines out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole reuses in when it is already buffered so that earlier reads
// (the scenario menu) do not lose input.
func NewConsole(in io.Reader, out io.Writer) *Console {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Console{in: br, out: out}
}

// Listen blocks on the next line. A closed input yields io.EOF.
func (c *Console) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintln(c.out, "Listening...")

	line, err := c.in.ReadString('\n')
	text := strings.TrimSpace(line)
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}
	if text != "" {
		fmt.Fprintf(c.out, "User: %s\n", text)
	}
	return text, nil
}

func (c *Console) Speak(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "AI: %s\n", strings.TrimSpace(text))
	return err
}
