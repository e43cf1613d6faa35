package cmd

import (
	"context"
	"errors"
	"fmt"

	"shoecare/database"
	serviceRepo "shoecare/database/repository/service"
	"shoecare/services/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errDrift = errors.New("stored services differ from the catalog")

func newVerifyCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the stored services match the catalog exactly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.SeedTimeout)
			defer cancel()

			records, err := loadRecords(a.cfg, file)
			if err != nil {
				return err
			}
			client, err := database.Connect(ctx, a.cfg.MongoURI)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					a.logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
				}
			}()

			repo := serviceRepo.NewMongoServiceRepo(client.Database(a.cfg.DatabaseName), a.logger)
			drift, err := seeder.Verify(ctx, repo, records)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), drift.String())
			if !drift.Clean() {
				return errDrift
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog file to compare against instead of the built-in one")
	return cmd
}
