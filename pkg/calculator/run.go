package calculator

import (
	"context"
	"fmt"
	"log"

	"rfm-segment/pkg/models"

	"github.com/schollz/progressbar/v3"
)

// Result regroupe toutes les sorties d'une analyse.
type Result struct {
	Scored     []models.ScoredRow
	Segmented  []models.SegmentedRow
	Summary    []models.SummaryEntry
	Profiles   []models.SegmentProfile
	Thresholds models.Thresholds
	Warnings   []models.CoercionWarning
}

// étapes : notation, références, segmentation, résumé, description
const stages = 5

// Run exécute le pipeline complet : notation → références → segmentation →
// résumé. Toute erreur fatale interrompt le run sans résultat partiel.
func Run(ctx context.Context, table models.Table, cfg models.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bar := progressbar.DefaultSilent(stages)
	if cfg.Verbose {
		bar = progressbar.Default(stages, "rfm")
	}

	scored, err := ComputeScores(table, cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("compute scores: %w", err)
	}
	for _, w := range scored.Warnings {
		log.Printf("[WARN] %v", w)
	}
	if cfg.Verbose {
		log.Printf("[INFO] strategy=%s rows=%d warnings=%d", cfg.Scoring.Strategy, len(scored.Rows), len(scored.Warnings))
	}
	_ = bar.Add(1)

	th, err := ResolveThresholds(scored.Rows, cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	if cfg.Verbose {
		log.Printf("[INFO] thresholds explicit=%t R=%.4f F=%.4f M=%.4f",
			cfg.Thresholds != nil, th.Recency, th.Frequency, th.Monetary)
	}
	_ = bar.Add(1)

	segmented := SegmentRows(scored.Rows, th)
	_ = bar.Add(1)

	summary, err := Summarize(segmented)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	_ = bar.Add(1)

	profiles, err := Describe(segmented)
	if err != nil {
		return nil, fmt.Errorf("describe: %w", err)
	}
	_ = bar.Add(1)

	if cfg.Verbose {
		for _, e := range summary {
			log.Printf("[DEBUG] %s -> %d (%.2f%%)", e.Segment, e.Count, e.Percentage)
		}
	}

	return &Result{
		Scored:     scored.Rows,
		Segmented:  segmented,
		Summary:    summary,
		Profiles:   profiles,
		Thresholds: th,
		Warnings:   scored.Warnings,
	}, nil
}
