package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(foreignCmd)
}

var foreignCmd = &cobra.Command{
	Use:   "foreign",
	Short: "Harvests the results of every precinct abroad.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return schedule(cmd, func() error {
			return runForeign(cmd)
		})
	},
}

func runForeign(cmd *cobra.Command) error {
	env := getEnv(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Zpracovávám okrsky v zahraničí...")

	result, err := env.Runner.Foreign(cmd.Context())
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), result)
	return nil
}
