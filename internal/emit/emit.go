// Package emit is the file sink at the edge of the pipeline. Documents
// arrive fully rendered; this package only decides where they land.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// #region types

// Artifact is one rendered document ready to be written.
type Artifact struct {
	Name string // basename within the output directory
	Body string
}

// Config controls where artifacts are written. Mirroring matches the
// orchestrator convention: a second copy of every header lands under
// results/<run>/gen for archival alongside run artifacts.
type Config struct {
	FinalDir      string
	RunName       string
	CopyToResults bool
	ResultsDir    string
	ResultsSubdir string
}

// DefaultConfig mirrors the orchestrator defaults.
func DefaultConfig() Config {
	return Config{
		FinalDir:      ".",
		CopyToResults: true,
		ResultsDir:    "results",
		ResultsSubdir: "gen",
	}
}

// #endregion types

// #region write
// Write lands every artifact under FinalDir, then mirrors them to
// results/<run>/<subdir> when mirroring is on. Returns the final paths
// written (mirror copies excluded).
func Write(cfg Config, artifacts []Artifact) ([]string, error) {
	if err := os.MkdirAll(cfg.FinalDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		p := filepath.Join(cfg.FinalDir, a.Name)
		if err := os.WriteFile(p, []byte(a.Body), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", a.Name, err)
		}
		paths = append(paths, p)
	}

	if cfg.CopyToResults && cfg.RunName != "" {
		mirror := filepath.Join(cfg.ResultsDir, cfg.RunName, cfg.ResultsSubdir)
		if err := os.MkdirAll(mirror, 0o755); err != nil {
			return nil, fmt.Errorf("create mirror dir: %w", err)
		}
		for _, a := range artifacts {
			p := filepath.Join(mirror, a.Name)
			if err := os.WriteFile(p, []byte(a.Body), 0o644); err != nil {
				return nil, fmt.Errorf("mirror %s: %w", a.Name, err)
			}
		}
	}

	return paths, nil
}

// #endregion write
