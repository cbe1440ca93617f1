package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List the configured widgets and their initial state",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Name", "Label", "Visible", "Enabled")
		for _, w := range cfg.UI.Widgets {
			if err := table.Append(w.Name, w.Label, strconv.FormatBool(w.Visible), strconv.FormatBool(w.Enabled)); err != nil {
				return err
			}
		}
		return table.Render()
	},
}
