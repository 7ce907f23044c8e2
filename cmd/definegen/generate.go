package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/emit"
	"github.com/fatori-v/go-defines/internal/index"
	"github.com/fatori-v/go-defines/internal/pipeline"
	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

var (
	genRunPath    string
	genBoardMap   string
	genBoardsDir  string
	genOutDir     string
	genResultsDir string
	genNoMirror   bool
	genNoTCL      bool
	genDBPath     string
)

// generateCmd renders the define header and pblock TCL for one run.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the define header and pblock TCL for one run",
	Long: `Loads a run YAML and the board modules map, runs the seeded selection
pipeline, and writes fatori_pblocks.svh, fatori_pblocks.tcl, and the master
fatori_defines.svh under the output directory.

When the run YAML carries no seed, a random 64-bit seed is drawn once, used
for the whole generation, and logged so the run can be reproduced.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genRunPath, "run", "", "path to the run YAML (required)")
	generateCmd.Flags().StringVar(&genBoardMap, "board-map", "", "path to boards/<board>/modules.yaml (default derived from --boards-dir and run.hardware.board)")
	generateCmd.Flags().StringVar(&genBoardsDir, "boards-dir", "boards", "directory holding per-board modules maps")
	generateCmd.Flags().StringVar(&genOutDir, "out", ".", "directory for generated headers (final destination)")
	generateCmd.Flags().StringVar(&genResultsDir, "results-dir", "results", "results root for mirrored artifacts")
	generateCmd.Flags().BoolVar(&genNoMirror, "no-copy-to-results", false, "do not mirror headers to results/<run>/gen")
	generateCmd.Flags().BoolVar(&genNoTCL, "no-tcl", false, "skip pblock TCL emission")
	generateCmd.Flags().StringVar(&genDBPath, "db", "", "path to the generation index database (index skipped when empty)")
	_ = generateCmd.MarkFlagRequired("run")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := run.LoadConfig(genRunPath)
	if err != nil {
		return err
	}

	id := cfg.Identity
	if !cfg.SeedProvided {
		id.Seed = rand.Uint64()
		logger.Info("run YAML carries no seed, drew one for this generation",
			zap.String("run", id.Name), zap.Uint64("seed", id.Seed))
	}

	mapPath := genBoardMap
	if mapPath == "" {
		if cfg.Board == "" {
			return fmt.Errorf("run %s names no board and no --board-map was given", id.Name)
		}
		mapPath = filepath.Join(genBoardsDir, cfg.Board, "modules.yaml")
	}
	cat, err := catalog.LoadBoardMap(mapPath)
	if err != nil {
		return err
	}

	pcfg := pipeline.DefaultConfig()
	pcfg.Selector = selectorConfig(cfg.Selection)
	pcfg.EmitTCL = !genNoTCL

	res, err := pipeline.Generate(id, cat, pcfg)
	if err != nil {
		return err
	}

	artifacts := []emit.Artifact{
		{Name: pcfg.Header.FileName, Body: res.Header},
		{Name: "fatori_defines.svh", Body: res.Master},
	}
	if res.Pblocks != "" {
		artifacts = append(artifacts, emit.Artifact{Name: "fatori_pblocks.tcl", Body: res.Pblocks})
	}

	ecfg := emit.DefaultConfig()
	ecfg.FinalDir = genOutDir
	ecfg.RunName = id.Name
	ecfg.ResultsDir = genResultsDir
	ecfg.CopyToResults = !genNoMirror
	paths, err := emit.Write(ecfg, artifacts)
	if err != nil {
		return err
	}

	enabled := 0
	for _, d := range res.Decisions {
		if d.Enabled {
			enabled++
		}
	}
	logger.Info("generation complete",
		zap.String("run", id.Name),
		zap.Uint64("seed", id.Seed),
		zap.String("board", cat.Board),
		zap.Int("targets", len(res.Decisions)),
		zap.Int("enabled", enabled),
		zap.String("header_hash", res.HeaderHash),
		zap.Strings("artifacts", paths),
	)

	if genDBPath != "" {
		store, err := index.NewStore(genDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.RecordGeneration(index.GenerationRecord{
			RunName:    id.Name,
			Seed:       id.Seed,
			Board:      cat.Board,
			Policy:     string(policyOf(pcfg.Selector)),
			HeaderHash: res.HeaderHash,
		}, res.Decisions)
		if err != nil {
			return err
		}
		logger.Info("generation recorded", zap.String("generation_id", rec.GenerationID))
	}

	return nil
}

// selectorConfig maps the run YAML selection section onto a selector
// config. A zero bias means "unset" and falls back to the default; a run
// that genuinely wants nothing enabled uses force_disable or percentage 0.
func selectorConfig(spec run.SelectionSpec) selector.Config {
	out := selector.DefaultConfig()
	if spec.Policy != "" {
		out.Policy = selector.Policy(spec.Policy)
	}
	if spec.Bias != 0 {
		out.Bias = spec.Bias
	}
	out.Percentage = spec.Percentage
	out.ForceEnable = spec.ForceEnable
	out.ForceDisable = spec.ForceDisable
	return out
}

func policyOf(cfg selector.Config) selector.Policy {
	if cfg.Policy == "" {
		return selector.PolicyIndependent
	}
	return cfg.Policy
}
