package selector

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/run"
)

// #region errors
var (
	// ErrEmptyInput is returned when the target list is empty.
	ErrEmptyInput = errors.New("selector: empty target list")
	// ErrInvalidInput is returned for malformed input, e.g. a duplicate
	// target name or an override naming an unknown target.
	ErrInvalidInput = errors.New("selector: invalid input")
)

// #endregion errors

// #region select
// Select maps (run identity, ordered target list) to one Decision per
// target, in input order. The decision stream depends only on the seed, the
// target name, and the target's position; no ambient state participates.
// Attributes are left empty for the resolver to fill.
func Select(id run.Identity, targets []catalog.Target, cfg Config) ([]Decision, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyInput
	}

	index := make(map[string]int, len(targets))
	for i, t := range targets {
		if _, dup := index[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate target name %q", ErrInvalidInput, t.Name)
		}
		index[t.Name] = i
	}

	scores := make([]uint64, len(targets))
	for i, t := range targets {
		scores[i] = mix(id.Seed, t.Name, i)
	}

	enabled := make([]bool, len(targets))
	switch cfg.Policy {
	case PolicyIndependent, "":
		limit := biasLimit(cfg.Bias)
		for i, s := range scores {
			enabled[i] = s < limit
		}
	case PolicyQuota:
		for _, i := range quotaPick(scores, cfg.Percentage) {
			enabled[i] = true
		}
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, cfg.Policy)
	}

	if err := applyOverrides(enabled, index, cfg); err != nil {
		return nil, err
	}

	decisions := make([]Decision, len(targets))
	for i, t := range targets {
		decisions[i] = Decision{Target: t, Enabled: enabled[i]}
	}
	return decisions, nil
}

// #endregion select

// #region mixing

// mix derives the per-target stream value from (seed, name, position).
// Layout: sha256(BE64(seed) | 0x00 | name | 0x00 | BE64(index)), first
// 8 bytes big-endian. The zero separators keep (seed, name) and
// (name, index) pairs from aliasing across targets.
func mix(seed uint64, name string, position int) uint64 {
	var buf [8]byte
	h := sha256.New()

	binary.BigEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	binary.BigEndian.PutUint64(buf[:], uint64(position))
	h.Write(buf[:])

	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// biasLimit maps a bias in [0,1] to a strict upper bound on the stream
// value. Bias 0.5 yields exactly 1<<63.
func biasLimit(bias float64) uint64 {
	switch {
	case bias <= 0:
		return 0
	case bias >= 1:
		return math.MaxUint64
	}
	return uint64(bias * float64(math.MaxUint64))
}

// quotaPick returns the indexes of the round(len*pct/100) lowest scores,
// rounding half up. Ties break on position so the pick stays total.
func quotaPick(scores []uint64, percentage int) []int {
	if percentage <= 0 {
		return nil
	}
	if percentage > 100 {
		percentage = 100
	}
	k := (len(scores)*percentage + 50) / 100
	if k > len(scores) {
		k = len(scores)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] < scores[order[b]]
		}
		return order[a] < order[b]
	})
	return order[:k]
}

// #endregion mixing

// #region overrides

// applyOverrides pins forced targets after the policy has decided.
// Override names must exist in the catalog; unknown names are an error,
// not a no-op.
func applyOverrides(enabled []bool, index map[string]int, cfg Config) error {
	for _, name := range cfg.ForceEnable {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("%w: force_enable references unknown target %q", ErrInvalidInput, name)
		}
		enabled[i] = true
	}
	for _, name := range cfg.ForceDisable {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("%w: force_disable references unknown target %q", ErrInvalidInput, name)
		}
		enabled[i] = false
	}
	return nil
}

// #endregion overrides
