// Package pipeline implements the ordered multiplicative adjustment
// pipeline: guarded input, fixed stage order, clamped composition and a
// human-readable explanation trail.
package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
)

// Options control optional pipeline behaviour.
type Options struct {
	// ClassifyArchetypes enables the descriptive archetype tag on output.
	ClassifyArchetypes bool
}

// Pipeline composes the multiplier stages over a guarded candidate.
type Pipeline struct {
	stages []Stage
	opts   Options
	logger *logrus.Logger
}

// New creates a Pipeline with the fixed stage set.
func New(opts Options, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		stages: Stages(),
		opts:   opts,
		logger: logger,
	}
}

// Compose runs the input guard and every stage in fixed order. The running
// probability is re-derived after each stage so band-gated stages observe
// the already-adjusted value. The final probability is clamped to [0,1] and
// the explanation joins the non-empty stage fragments in stage order.
//
// A snapshot is optional: when an offer matches the candidate's snapshot
// key, market-comparison metadata is attached; a miss is not an error.
func (p *Pipeline) Compose(candidate models.Candidate, snapshot *models.OddsSnapshot, snapshotKey string) *models.AdjustedCandidate {
	start := time.Now()

	candidate = Guard(candidate, p.logger)

	running := clamp(candidate.BaselineProbability, 0, 1)
	results := make([]models.StageResult, 0, len(p.stages))
	for _, stage := range p.stages {
		result := stage.Fn(candidate, running)
		results = append(results, result)
		running = candidate.BaselineProbability * models.CombinedMultiplier(results)
		stageMultiplier.WithLabelValues(result.Name).Observe(result.Multiplier)
	}

	adjusted := &models.AdjustedCandidate{
		Candidate:        candidate,
		Stages:           results,
		FinalProbability: clamp(running, 0, 1),
		Explanation:      models.BuildExplanation(results),
		EstimatedAt:      time.Now().UTC(),
	}

	if p.opts.ClassifyArchetypes {
		archetype := Classify(candidate.Profile)
		adjusted.Archetype = &archetype
	}

	if offer, ok := snapshot.Lookup(snapshotKey); ok {
		implied := offer.ImpliedProbability()
		edge := adjusted.FinalProbability - implied
		adjusted.Offer = &offer
		adjusted.MarketImpliedProbability = &implied
		adjusted.Edge = &edge
	}

	estimateDuration.Observe(time.Since(start).Seconds())
	estimatesTotal.Inc()

	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{
			"candidate_id": candidate.ID,
			"baseline":     candidate.BaselineProbability,
			"final":        adjusted.FinalProbability,
		}).Debug("Composed adjusted probability")
	}

	return adjusted
}
