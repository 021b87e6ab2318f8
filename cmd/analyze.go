package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	"rfm-segment/internal/config"
	"rfm-segment/pkg/calculator"
	"rfm-segment/pkg/database"
	"rfm-segment/pkg/dataset"
	"rfm-segment/pkg/models"
	"rfm-segment/pkg/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score, segment and summarize a customer table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		return runAnalyze(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.ValidateSource(); err != nil {
		return err
	}
	// configuration complète avant toute lecture de données
	runCfg, err := cfg.Run()
	if err != nil {
		return err
	}
	if err := calculator.ValidateScoring(runCfg.Scoring); err != nil {
		return err
	}
	formatter, err := report.NewFormatter(cfg.Format, cfg.Lang, cfg.Describe)
	if err != nil {
		return err
	}

	table, err := loadTable(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Printf("[INFO] loaded columns=%d rows=%d", len(table.Columns), len(table.Rows))
	}

	res, err := calculator.Run(ctx, table, runCfg)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := report.ExportCSV(cfg.Output, res.Segmented, cfg.Lang); err != nil {
			return err
		}
		if cfg.Verbose {
			log.Printf("[INFO] exported %d rows to %s", len(res.Segmented), cfg.Output)
		}
	}
	return formatter.Format(out, res)
}

func loadTable(ctx context.Context, cfg *config.Config) (models.Table, error) {
	if cfg.Input != "" {
		return dataset.LoadFile(cfg.Input)
	}
	db, dsnUsed, err := database.Open(cfg.DSN)
	if err != nil {
		return models.Table{}, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if cfg.Verbose {
		log.Printf("[INFO] connected dsn=%s", dsnUsed)
	}
	return database.LoadTable(ctx, db, cfg.Table)
}
