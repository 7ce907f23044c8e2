package run

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// #region yaml-shapes

// runFile mirrors the run YAML consumed by the orchestrator. Only the
// sections this generator needs are declared; unrelated run sections
// (time profiles, serial settings) are ignored.
type runFile struct {
	Run struct {
		Identification struct {
			Name string  `yaml:"name"`
			Seed *uint64 `yaml:"seed"`
		} `yaml:"identification"`
		Hardware struct {
			Board string `yaml:"board"`
		} `yaml:"hardware"`
	} `yaml:"run"`
	Specifics struct {
		FaultInjection struct {
			Area struct {
				Modules struct {
					Targets map[string]any `yaml:"targets"`
				} `yaml:"modules"`
			} `yaml:"area"`
		} `yaml:"fault_injection"`
	} `yaml:"specifics"`
	Selection SelectionSpec `yaml:"selection"`
}

// #endregion yaml-shapes

// #region load
// LoadConfig reads a run YAML. The legacy per-target enable map
// (specifics.fault_injection.area.modules.targets) predates seeded
// selection; truthy entries are folded into Selection.ForceEnable so old
// run files keep producing the same protected set.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read run config: %w", err)
	}

	var file runFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	if file.Run.Identification.Name == "" {
		return Config{}, fmt.Errorf("run config %s: run.identification.name is required", path)
	}

	cfg := Config{
		Identity:  Identity{Name: file.Run.Identification.Name},
		Board:     file.Run.Hardware.Board,
		Selection: file.Selection,
	}
	if file.Run.Identification.Seed != nil {
		cfg.Identity.Seed = *file.Run.Identification.Seed
		cfg.SeedProvided = true
	}

	legacy := legacyEnabled(file.Specifics.FaultInjection.Area.Modules.Targets)
	cfg.Selection.ForceEnable = mergeNames(cfg.Selection.ForceEnable, legacy)

	return cfg, nil
}

// #endregion load

// #region helpers

// legacyEnabled normalizes boolean-like values from the legacy targets map
// into the list of names marked enabled, in sorted order.
func legacyEnabled(targets map[string]any) []string {
	var names []string
	for name, val := range targets {
		if truthy(val) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

func mergeNames(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, n := range base {
		seen[n] = true
	}
	merged := append([]string{}, base...)
	for _, n := range extra {
		if !seen[n] {
			merged = append(merged, n)
			seen[n] = true
		}
	}
	return merged
}

// #endregion helpers
