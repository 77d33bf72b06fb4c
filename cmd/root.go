package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	configx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/config"
	logx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/logger"
)

func Execute() error {
	return newRootCmd(wireApp()).Execute()
}

func newRootCmd(app *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coldcall",
		Short: "Hinglish cold-call agent: greet, converse and close a scripted call",
		Long: "coldcall runs one outbound call per invocation. Pick a scenario from the menu " +
			"(or use `coldcall call <scenario>`), then talk to the agent by typing or, with " +
			"--speech audio, through the microphone.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runMenu(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.opts.envFile, "env", "", "path to a .env file (default: ./.env when present)")
	flags.StringVar(&app.opts.speechMode, "speech", "", "speech mode, text or audio (overrides SPEECH_MODE)")
	flags.BoolVar(&app.opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newCallCmd(app),
		newScenariosCmd(),
	)

	return rootCmd
}

// setup loads the .env file and initializes logging before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	configx.SetEnvFile(a.opts.envFile)

	logCfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return fmt.Errorf("load log config: %w", err)
	}
	if a.opts.debug {
		logCfg.Debug = true
	}
	logx.InitWithWriter(cmd.ErrOrStderr(), *logCfg)
	return nil
}

func (a *app) runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "Hinglish Cold Call Agent")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintln(out, "Available scenarios:")
	for i, s := range contractx.Scenarios() {
		fmt.Fprintf(out, "%d. %s\n", i+1, s.Title())
	}
	fmt.Fprint(out, "Select a scenario (1-3): ")

	choice, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read scenario choice: %w", err)
	}
	scenario, err := contractx.ScenarioFromChoice(choice)
	if err != nil {
		fmt.Fprintln(out, "Invalid choice. Please select 1, 2, or 3.")
		return nil
	}

	return a.runCall(cmd, scenario, in)
}
