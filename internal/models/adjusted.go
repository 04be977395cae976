package models

import (
	"strings"
	"time"
)

// StageResult records one multiplier stage's contribution. Results are
// appended in fixed stage order and never mutated after creation.
type StageResult struct {
	Name        string  `json:"name"`
	Multiplier  float64 `json:"multiplier"`
	Explanation string  `json:"explanation,omitempty"`
	Applied     bool    `json:"applied"`
}

// ArchetypeTag classifies a batter's batted-ball profile. Descriptive
// metadata only; it never feeds back into the probability.
type ArchetypeTag string

const (
	ArchetypeBarrelBomber    ArchetypeTag = "BARREL_BOMBER"
	ArchetypeLoftOpportunist ArchetypeTag = "LOFT_OPPORTUNIST"
	ArchetypeVarianceOnly    ArchetypeTag = "VARIANCE_ONLY"
	ArchetypeBalanced        ArchetypeTag = "BALANCED"
)

// Archetype pairs a tag with a fixed confidence scalar.
type Archetype struct {
	Tag        ArchetypeTag `json:"tag"`
	Confidence float64      `json:"confidence"`
}

// AdjustedCandidate is the pipeline output: the guarded candidate, the
// ordered stage trail, the clamped final probability and its explanation,
// plus descriptive market-comparison metadata when a snapshot offer matched.
type AdjustedCandidate struct {
	Candidate Candidate     `json:"candidate"`
	Stages    []StageResult `json:"stages"`

	FinalProbability float64 `json:"final_probability"`
	Explanation      string  `json:"explanation"`

	Archetype *Archetype `json:"archetype,omitempty"`

	// Market comparison, populated only when the snapshot held an offer
	// for this player. Edge = model probability - market implied probability.
	Offer                    *Offer   `json:"offer,omitempty"`
	MarketImpliedProbability *float64 `json:"market_implied_probability,omitempty"`
	Edge                     *float64 `json:"edge,omitempty"`

	EstimatedAt time.Time `json:"estimated_at"`
}

// BuildExplanation joins the non-empty stage fragments in stage order.
// Stages that did not apply and contributed no fragment are omitted.
func BuildExplanation(stages []StageResult) string {
	fragments := make([]string, 0, len(stages))
	for _, s := range stages {
		if s.Explanation != "" {
			fragments = append(fragments, s.Explanation)
		}
	}
	return strings.Join(fragments, "; ")
}

// CombinedMultiplier returns the product of all stage multipliers.
func CombinedMultiplier(stages []StageResult) float64 {
	product := 1.0
	for _, s := range stages {
		product *= s.Multiplier
	}
	return product
}
