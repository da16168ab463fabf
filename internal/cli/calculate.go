package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Run one calculation cycle and print the resulting rate as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		final, err := getApp().Calculate(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(final)
	},
}
