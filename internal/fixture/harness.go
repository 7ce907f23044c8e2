package fixture

import (
	"fmt"

	"github.com/fatori-v/go-defines/internal/pipeline"
	"github.com/fatori-v/go-defines/internal/run"
)

// #region types

// ReplayResult captures one fixture replay: the regenerated hash and every
// point where the regeneration diverged from the pinned expectation.
type ReplayResult struct {
	Passed     bool
	HeaderHash string
	Mismatches []string
}

// #endregion types

// #region replay
// Replay re-runs the full pipeline over a fixture's inputs and diffs the
// outcome against the pinned expectations. The pipeline is also run a
// second time so a replay additionally checks generation-to-generation
// byte stability, not just agreement with the recorded past.
func Replay(f Fixture) (ReplayResult, error) {
	id := run.Identity{Name: f.Run.Name, Seed: f.Run.Seed}
	cfg := pipeline.DefaultConfig()
	cfg.Selector = f.SelectorConfig()
	cat := f.Catalog()

	res, err := pipeline.Generate(id, cat, cfg)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay generate: %w", err)
	}
	again, err := pipeline.Generate(id, cat, cfg)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay regenerate: %w", err)
	}

	out := ReplayResult{HeaderHash: res.HeaderHash}

	if res.Header != again.Header {
		out.Mismatches = append(out.Mismatches, "repeated generation is not byte-identical")
	}
	if f.Expected.HeaderHash != "" && res.HeaderHash != f.Expected.HeaderHash {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf(
			"header hash %s, fixture pinned %s", res.HeaderHash, f.Expected.HeaderHash))
	}

	if len(f.Expected.Decisions) != 0 {
		if len(f.Expected.Decisions) != len(res.Decisions) {
			out.Mismatches = append(out.Mismatches, fmt.Sprintf(
				"decision count %d, fixture pinned %d", len(res.Decisions), len(f.Expected.Decisions)))
		} else {
			for i, want := range f.Expected.Decisions {
				got := res.Decisions[i]
				if got.Target.Name != want.Target {
					out.Mismatches = append(out.Mismatches, fmt.Sprintf(
						"decision %d: target %q, fixture pinned %q", i, got.Target.Name, want.Target))
				}
				if got.Enabled != want.Enabled {
					out.Mismatches = append(out.Mismatches, fmt.Sprintf(
						"decision %d (%s): enabled=%v, fixture pinned %v", i, want.Target, got.Enabled, want.Enabled))
				}
			}
		}
	}

	out.Passed = len(out.Mismatches) == 0
	return out, nil
}

// #endregion replay
