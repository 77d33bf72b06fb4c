package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available call scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for i, s := range contractx.Scenarios() {
				if _, err := fmt.Fprintf(out, "%d  %-10s %s\n", i+1, s, s.Title()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
