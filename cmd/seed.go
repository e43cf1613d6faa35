package cmd

import (
	"context"
	"fmt"

	"shoecare/catalog"
	"shoecare/config"
	"shoecare/database"
	serviceRepo "shoecare/database/repository/service"
	"shoecare/models"
	"shoecare/services/seeder"
	"shoecare/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedOptions struct {
	dryRun bool
	file   string
}

func newSeedCmd(a *app) *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Delete every stored service and insert the canonical catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, a, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "seed an in-memory store instead of MongoDB")
	cmd.Flags().StringVar(&opts.file, "file", "", "catalog file to seed instead of the built-in one (.yaml, .toml, .json)")
	return cmd
}

func runSeed(cmd *cobra.Command, a *app, opts *seedOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.SeedTimeout)
	defer cancel()
	out := cmd.OutOrStdout()

	records, err := loadRecords(a.cfg, opts.file)
	if err != nil {
		return err
	}

	var (
		repo serviceRepo.ServiceRepository
		lock seeder.Locker
	)
	if opts.dryRun {
		fmt.Fprintln(out, "Dry run: seeding an in-memory store")
		repo = serviceRepo.NewMemoryServiceRepo()
	} else {
		client, err := database.Connect(ctx, a.cfg.MongoURI)
		if err != nil {
			return seeder.NewSeedError(seeder.StageConnect, err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				a.logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
			}
		}()
		fmt.Fprintln(out, "Connected to MongoDB")

		if a.cfg.LockEnabled() {
			rc, err := utils.NewLockClient(ctx, a.cfg)
			if err != nil {
				return seeder.NewSeedError(seeder.StageLock, err)
			}
			defer rc.Close()
			lock = utils.NewRedisLock(rc, seeder.LockName, a.cfg.SeedLockTTL)
		}

		// Binding issues no commands; schema work happens inside Run once the lock is held.
		repo = serviceRepo.NewMongoServiceRepo(client.Database(a.cfg.DatabaseName), a.logger)
	}

	s := seeder.NewSeeder(repo, lock, a.logger, out, a.cfg.ServicesEndpoint())
	_, err = s.Run(ctx, records)
	return err
}

// loadRecords returns the catalog to seed: file when given, else SEED_FILE, else the built-in one.
func loadRecords(cfg *config.Config, file string) ([]models.ServiceRecord, error) {
	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}
	if file == "" {
		file = cfg.SeedFile
	}
	if file != "" {
		return catalog.LoadFile(file, resolver)
	}
	return catalog.Load(resolver)
}

func newResolver(cfg *config.Config) (catalog.ImageResolver, error) {
	if cfg.CloudinaryCloudName != "" {
		return catalog.NewCloudinaryResolver(cfg.CloudinaryCloudName)
	}
	return catalog.NewBaseURLResolver(cfg.BaseURL)
}
