package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"volby-harvest/internal/harvest"
	"volby-harvest/internal/scrapers/volby"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(domesticCmd)
}

var domesticCmd = &cobra.Command{
	Use:   "domestic [number]",
	Short: "Harvests the municipalities of one district, prompts for the district when no number is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := getEnv(cmd.Context())
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Načítám seznam okresů...")
		districts, err := env.Runner.Districts(cmd.Context())
		if err != nil {
			return err
		}

		var input string
		if len(args) == 1 {
			input = args[0]
		} else {
			renderDistricts(out, districts)
			input, err = prompt(cmd.InOrStdin(), out, fmt.Sprintf(
				"Zadejte číslo okresu pro zpracování (%d pro zahraničí): ",
				env.Config.ForeignSentinel,
			))
			if err != nil {
				return err
			}
		}

		selection, err := harvest.ParseSelection(input, districts, env.Config.ForeignSentinel)
		if err != nil {
			fmt.Fprintln(out, harvest.SelectionMessage(err))
			return err
		}
		if selection.Foreign {
			return schedule(cmd, func() error {
				return runForeign(cmd)
			})
		}

		return schedule(cmd, func() error {
			fmt.Fprintf(out, "Zpracovávám okres %d. %s...\n", selection.District.Number, selection.District.Name)
			result, err := env.Runner.Domestic(cmd.Context(), selection.District)
			if err != nil {
				return err
			}
			renderResult(out, result)
			return nil
		})
	},
}

func prompt(in io.Reader, out io.Writer, message string) (string, error) {
	fmt.Fprint(out, message)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func renderDistricts(out io.Writer, districts []volby.District) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Kraj", "Okres"})
	for _, d := range districts {
		t.AppendRow(table.Row{d.Number, d.Region, d.Name})
	}
	t.Render()
}
