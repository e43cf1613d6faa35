package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the services a seed run would insert, without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(a.cfg, file)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog file to print instead of the built-in one")
	return cmd
}
