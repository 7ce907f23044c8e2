package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// #region yaml-shapes

// boardMapFile mirrors boards/<board>/modules.yaml.
type boardMapFile struct {
	Board   string                `yaml:"board"`
	Order   []string              `yaml:"order"`
	Targets map[string]targetSpec `yaml:"targets"`
}

type targetSpec struct {
	Kind   string  `yaml:"kind"`
	Path   string  `yaml:"path"`
	Weight float64 `yaml:"weight"`
	Rects  []Rect  `yaml:"rects"`
}

// #endregion yaml-shapes

// #region load
// LoadBoardMap reads a board modules map (boards/<board>/modules.yaml) and
// returns an ordered Catalog. The explicit 'order' list fixes target order;
// when it is absent, names are sorted so YAML map iteration never leaks into
// the output contract.
func LoadBoardMap(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read board map: %w", err)
	}

	var file boardMapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("parse board map %s: %w", path, err)
	}
	if len(file.Targets) == 0 {
		return Catalog{}, fmt.Errorf("board map %s: no targets", path)
	}

	order := file.Order
	if len(order) == 0 {
		order = make([]string, 0, len(file.Targets))
		for name := range file.Targets {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	seen := make(map[string]bool, len(order))
	targets := make([]Target, 0, len(order))
	for _, name := range order {
		if seen[name] {
			return Catalog{}, fmt.Errorf("board map %s: duplicate order entry %q", path, name)
		}
		seen[name] = true

		spec, ok := file.Targets[name]
		if !ok {
			return Catalog{}, fmt.Errorf("board map %s: order entry %q has no target definition", path, name)
		}
		targets = append(targets, Target{
			Name:   name,
			Kind:   Kind(spec.Kind),
			Path:   spec.Path,
			Weight: spec.Weight,
			Rects:  spec.Rects,
		})
	}

	// Targets defined but missing from an explicit order list are a config
	// error: silently appending them would change emission order between
	// edits of the map.
	if len(file.Order) > 0 && len(targets) != len(file.Targets) {
		for name := range file.Targets {
			if !seen[name] {
				return Catalog{}, fmt.Errorf("board map %s: target %q missing from order list", path, name)
			}
		}
	}

	return Catalog{Board: file.Board, Targets: targets}, nil
}

// #endregion load
