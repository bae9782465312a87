package strategy

import (
	"fmt"
	"sort"
)

// Conservative stops as soon as any positive score is banked, minimizing
// bust risk at the cost of low scores.
type Conservative struct{}

func (Conservative) Name() string { return "conservative" }

func (Conservative) Decide(v TurnView) Decision {
	if v.Score > 0 {
		return Stop
	}
	return Continue
}

// Threshold continues while the accumulated score is below a configured
// target, then stops.
type Threshold struct {
	Target int
}

// NewThreshold creates a threshold policy for the given target score.
func NewThreshold(target int) Threshold {
	return Threshold{Target: target}
}

func (s Threshold) Name() string { return fmt.Sprintf("threshold(%d)", s.Target) }

func (s Threshold) Decide(v TurnView) Decision {
	if v.Score < s.Target {
		return Continue
	}
	return Stop
}

// Aggressive never stops voluntarily; the turn ends only when the dice run
// out, banking the full score or busting.
type Aggressive struct{}

func (Aggressive) Name() string { return "aggressive" }

func (Aggressive) Decide(TurnView) Decision { return Continue }

// Chase plays the table: it keeps rolling while at or behind the round's
// current top score, and stops once ahead. Rolling first, it falls back to
// conservative play.
type Chase struct{}

func (Chase) Name() string { return "chase" }

func (Chase) Decide(v TurnView) Decision {
	if v.TopScore < 0 {
		return Conservative{}.Decide(v)
	}
	if v.Score <= v.TopScore {
		return Continue
	}
	return Stop
}

// Options carries policy-specific configuration for New.
type Options struct {
	// Threshold is the target score for the "threshold" policy.
	Threshold int
}

// DefaultThreshold is used when the threshold policy is requested without a
// target.
const DefaultThreshold = 12

// New constructs a strategy by its configuration name.
func New(name string, opts Options) (Strategy, error) {
	switch name {
	case "conservative":
		return Conservative{}, nil
	case "threshold":
		target := opts.Threshold
		if target <= 0 {
			target = DefaultThreshold
		}
		return NewThreshold(target), nil
	case "aggressive":
		return Aggressive{}, nil
	case "chase":
		return Chase{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (known: %v)", name, Names())
	}
}

// Names returns the recognized configuration names, sorted.
func Names() []string {
	names := []string{"aggressive", "chase", "conservative", "threshold"}
	sort.Strings(names)
	return names
}
