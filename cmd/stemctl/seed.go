package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"stem-inspires/repository"
	"stem-inspires/seed"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [champions|schools|fll|banner|all]",
		Short: "Replace a content collection with the bundled data",
		Long: `Replace a content collection with the bundled data.

Existing documents in the collection are removed first. "all" seeds
champions before the banner so the banner picks up the first champion's
image.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"champions", "schools", "fll", "banner", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, db *mongo.Database) error {
				return runSeed(ctx, cmd, db, args[0])
			})
		},
	}
}

func runSeed(ctx context.Context, cmd *cobra.Command, db *mongo.Database, target string) error {
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	champions := repository.NewChampionRepo(db)
	out := cmd.OutOrStdout()

	seedChampions := func() error {
		n, err := seed.LoadChampions(ctx, champions)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "champions: %d seeded\n", n)
		return nil
	}
	seedSchools := func() error {
		n, err := seed.LoadSchools(ctx, repository.NewSchoolRepo(db))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "schools: %d seeded\n", n)
		return nil
	}
	seedFLL := func() error {
		n, err := seed.LoadFLL(ctx, repository.NewFLLRepo(db))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "fll: %d seeded\n", n)
		return nil
	}
	seedBanner := func() error {
		if err := seed.LoadBanner(ctx, repository.NewBannerRepo(db), champions); err != nil {
			return err
		}
		fmt.Fprintln(out, "banner: seeded")
		return nil
	}

	switch target {
	case "champions":
		return seedChampions()
	case "schools":
		return seedSchools()
	case "fll":
		return seedFLL()
	case "banner":
		return seedBanner()
	}
	for _, step := range []func() error{seedChampions, seedSchools, seedFLL, seedBanner} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
