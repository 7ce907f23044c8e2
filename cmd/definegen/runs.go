package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fatori-v/go-defines/internal/index"
)

var (
	runsDBPath string
	runsLast   int
	runsID     string
	runsJSON   bool
)

// runsCmd lists or details recorded generations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded generations from the index",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsDBPath, "db", "", "path to the generation index database (required)")
	runsCmd.Flags().IntVar(&runsLast, "last", 20, "show N most recent generations")
	runsCmd.Flags().StringVar(&runsID, "id", "", "show single generation detail")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON instead of table")
	_ = runsCmd.MarkFlagRequired("db")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(runsDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if runsID != "" {
		return printDetail(store, runsID)
	}
	return printList(store, runsLast)
}

// #region list-mode

type runsRow struct {
	GenerationID string `json:"generation_id"`
	RunName      string `json:"run_name"`
	Seed         uint64 `json:"seed"`
	Board        string `json:"board,omitempty"`
	Policy       string `json:"policy"`
	HeaderHash   string `json:"header_hash"`
	CreatedAt    string `json:"created_at"`
}

func printList(store *index.Store, last int) error {
	records, err := store.ListGenerations(last)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no generations found")
		return nil
	}

	rows := make([]runsRow, len(records))
	for i, rec := range records {
		rows[i] = runsRow{
			GenerationID: rec.GenerationID,
			RunName:      rec.RunName,
			Seed:         rec.Seed,
			Board:        rec.Board,
			Policy:       rec.Policy,
			HeaderHash:   rec.HeaderHash,
			CreatedAt:    rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	if runsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-36s  %-20s  %-20s  %-10s  %-12s  %s\n",
		"GENERATION", "RUN", "SEED", "BOARD", "POLICY", "CREATED")
	for _, r := range rows {
		fmt.Printf("%-36s  %-20s  %-20d  %-10s  %-12s  %s\n",
			r.GenerationID, r.RunName, r.Seed, r.Board, r.Policy, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func printDetail(store *index.Store, id string) error {
	rec, decisions, err := store.GetGeneration(id)
	if err != nil {
		return err
	}

	if runsJSON {
		out := struct {
			runsRow
			Decisions []index.DecisionRow `json:"decisions"`
		}{
			runsRow: runsRow{
				GenerationID: rec.GenerationID,
				RunName:      rec.RunName,
				Seed:         rec.Seed,
				Board:        rec.Board,
				Policy:       rec.Policy,
				HeaderHash:   rec.HeaderHash,
				CreatedAt:    rec.CreatedAt.Format("2006-01-02 15:04:05"),
			},
			Decisions: decisions,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("generation: %s\n", rec.GenerationID)
	fmt.Printf("run:        %s\n", rec.RunName)
	fmt.Printf("seed:       %d\n", rec.Seed)
	fmt.Printf("board:      %s\n", rec.Board)
	fmt.Printf("policy:     %s\n", rec.Policy)
	fmt.Printf("hash:       %s\n", rec.HeaderHash)
	fmt.Printf("created:    %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, d := range decisions {
		state := "0"
		if d.Enabled {
			state = "1"
		}
		fmt.Printf("  [%2d] %-24s %s  %s\n", d.Position, d.TargetName, state, d.Attribute)
	}
	return nil
}

// #endregion detail-mode
