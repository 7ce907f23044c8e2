package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/fixture"
	"github.com/fatori-v/go-defines/internal/pipeline"
	"github.com/fatori-v/go-defines/internal/run"
)

var (
	fixtureRunPath   string
	fixtureBoardMap  string
	fixtureBoardsDir string
	fixtureOutPath   string
	fixtureDesc      string
)

// fixtureCmd groups fixture operations.
var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Work with pinned generation fixtures",
}

// fixtureExportCmd pins a generation as a golden fixture JSON.
var fixtureExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a golden fixture from a run YAML and board map",
	Long: `Runs the pipeline over live inputs and writes a fixture JSON pinning the
decision sequence and header hash. Replay it later with 'definegen verify
--fixture' to detect drift in the mixing, rendering, or vocabulary.`,
	RunE: runFixtureExport,
}

func init() {
	fixtureExportCmd.Flags().StringVar(&fixtureRunPath, "run", "", "path to the run YAML (required)")
	fixtureExportCmd.Flags().StringVar(&fixtureBoardMap, "board-map", "", "path to boards/<board>/modules.yaml")
	fixtureExportCmd.Flags().StringVar(&fixtureBoardsDir, "boards-dir", "boards", "directory holding per-board modules maps")
	fixtureExportCmd.Flags().StringVar(&fixtureOutPath, "out", "", "output fixture JSON path (required)")
	fixtureExportCmd.Flags().StringVar(&fixtureDesc, "description", "", "free-form fixture description")
	_ = fixtureExportCmd.MarkFlagRequired("run")
	_ = fixtureExportCmd.MarkFlagRequired("out")

	fixtureCmd.AddCommand(fixtureExportCmd)
}

func runFixtureExport(cmd *cobra.Command, args []string) error {
	cfg, err := run.LoadConfig(fixtureRunPath)
	if err != nil {
		return err
	}

	id := cfg.Identity
	if !cfg.SeedProvided {
		id.Seed = rand.Uint64()
		logger.Info("run YAML carries no seed, drew one for this fixture",
			zap.String("run", id.Name), zap.Uint64("seed", id.Seed))
	}

	mapPath := fixtureBoardMap
	if mapPath == "" {
		if cfg.Board == "" {
			return fmt.Errorf("run %s names no board and no --board-map was given", id.Name)
		}
		mapPath = filepath.Join(fixtureBoardsDir, cfg.Board, "modules.yaml")
	}
	cat, err := catalog.LoadBoardMap(mapPath)
	if err != nil {
		return err
	}

	pcfg := pipeline.DefaultConfig()
	pcfg.Selector = selectorConfig(cfg.Selection)

	f, err := fixture.Export(id, cat, pcfg, fixtureDesc)
	if err != nil {
		return err
	}
	if err := fixture.Save(fixtureOutPath, f); err != nil {
		return err
	}

	logger.Info("fixture exported",
		zap.String("fixture", fixtureOutPath),
		zap.String("run", id.Name),
		zap.Uint64("seed", id.Seed),
		zap.String("header_hash", f.Expected.HeaderHash))
	return nil
}
