package commands

import (
	"fmt"
	"volby-harvest/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var findLimit int

func init() {
	districtsFindCmd.Flags().IntVarP(&findLimit, "limit", "n", 5, "How many districts to show.")
	districtsCmd.AddCommand(districtsFindCmd)
	rootCmd.AddCommand(districtsCmd)
}

var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "Lists the numbered districts accepted by domestic.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		districts, err := env.Runner.Districts(cmd.Context())
		if err != nil {
			return err
		}
		renderDistricts(cmd.OutOrStdout(), districts)
		return nil
	},
}

var districtsFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Looks up the number of a district by an approximate name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		districts, err := env.Runner.Districts(cmd.Context())
		if err != nil {
			return err
		}

		names := make([]string, len(districts))
		for i, d := range districts {
			names[i] = d.Name
		}
		matches := textutil.RankByName(args[0], names)
		if len(matches) > findLimit {
			matches = matches[:findLimit]
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"#", "Kraj", "Okres", "Shoda"})
		for _, m := range matches {
			d := districts[m.Index]
			t.AppendRow(table.Row{d.Number, d.Region, d.Name, fmt.Sprintf("%.2f", m.Similarity)})
		}
		t.Render()
		return nil
	},
}
