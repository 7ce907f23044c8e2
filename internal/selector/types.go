package selector

import "github.com/fatori-v/go-defines/internal/catalog"

// #region policy
// Policy names a selection strategy.
type Policy string

const (
	// PolicyIndependent decides each target with an independent biased coin
	// drawn from the per-target stream.
	PolicyIndependent Policy = "independent"
	// PolicyQuota enables a fixed fraction of the catalog, choosing the
	// targets with the lowest mixed scores.
	PolicyQuota Policy = "quota"
)

// #endregion policy

// #region config
// Config holds the selection policy and its parameters. Overrides are
// applied after the policy decides; force-disable wins over force-enable.
type Config struct {
	Policy       Policy
	Bias         float64 // independent: probability a target is enabled (0..1)
	Percentage   int     // quota: percent of targets enabled (0..100)
	ForceEnable  []string
	ForceDisable []string
}

// DefaultConfig returns the fixed-bias independent policy.
func DefaultConfig() Config {
	return Config{
		Policy: PolicyIndependent,
		Bias:   0.5,
	}
}

// #endregion config

// #region decision
// Decision records the outcome for one target. The ordered decision
// sequence for a run is the generator's sole output artifact before
// rendering; it is never mutated after creation.
type Decision struct {
	Target    catalog.Target
	Enabled   bool
	Attribute string // filled by the attribute resolver; "" when disabled
}

// #endregion decision
