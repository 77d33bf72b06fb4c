package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tanpawarit/hinglish-coldcall-agent/agent/agents/coldcall"
	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

func newCallCmd(app *app) *cobra.Command {
	names := make([]string, 0, 3)
	for _, s := range contractx.Scenarios() {
		names = append(names, string(s))
	}

	return &cobra.Command{
		Use:       "call <scenario>",
		Short:     "Start a call without the menu",
		Long:      "Start a call directly. <scenario> is demo, interview, payment or its menu number (1-3).",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := contractx.ParseScenario(args[0])
			if err != nil {
				return err
			}
			return app.runCall(cmd, scenario, bufio.NewReader(cmd.InOrStdin()))
		},
	}
}

// runCall wires one call and blocks until it is over. The first interrupt
// cancels the call and lets the farewell play; a second one kills the process.
func (a *app) runCall(cmd *cobra.Command, scenario contractx.Scenario, in *bufio.Reader) error {
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	context.AfterFunc(ctx, stop)

	fmt.Fprintf(out, "\nInitializing %s scenario...\n", cases.Title(language.English).String(string(scenario)))
	fmt.Fprintln(out, "Say 'bye', 'goodbye', or 'end call' to finish the conversation.")
	fmt.Fprintln(out)

	generator, err := a.newGenerator(ctx, scenario)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}
	listener, speaker, err := a.newSpeech(in, out)
	if err != nil {
		return fmt.Errorf("create speech io: %w", err)
	}

	agent, err := coldcall.New(scenario, generator)
	if err != nil {
		return err
	}
	controller, err := coldcall.NewController(agent, listener, speaker,
		coldcall.WithFarewellTimeout(a.farewellTimeout),
	)
	if err != nil {
		return err
	}

	res := controller.Run(ctx)
	if res.Err != nil {
		fmt.Fprintf(out, "An error occurred: %v\n", res.Err)
	}
	fmt.Fprintln(out, "Call ended. Thank you!")
	return nil
}
