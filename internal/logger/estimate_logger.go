// Package logger provides estimate audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
)

// EstimateLogger provides a dedicated audit trail for pipeline output, so
// every published probability can be reconstructed from its stage trail.
type EstimateLogger struct {
	*logrus.Entry
}

// NewEstimateLogger creates a new estimate logger.
func NewEstimateLogger(baseLogger *logrus.Logger) *EstimateLogger {
	return &EstimateLogger{
		Entry: baseLogger.WithField("component", "estimate"),
	}
}

// LogEstimate logs one composed estimate with its full stage trail.
func (el *EstimateLogger) LogEstimate(adjusted *models.AdjustedCandidate) {
	fields := logrus.Fields{
		"candidate_id": adjusted.Candidate.ID,
		"market":       adjusted.Candidate.Market,
		"baseline":     adjusted.Candidate.BaselineProbability,
		"final":        adjusted.FinalProbability,
		"explanation":  adjusted.Explanation,
	}
	if adjusted.Candidate.PitcherFix != "" {
		fields["pitcher_fix"] = adjusted.Candidate.PitcherFix
	}
	for _, stage := range adjusted.Stages {
		fields["mult_"+stage.Name] = stage.Multiplier
	}
	if adjusted.Edge != nil {
		fields["edge"] = *adjusted.Edge
	}
	if adjusted.Archetype != nil {
		fields["archetype"] = string(adjusted.Archetype.Tag)
	}

	el.WithFields(fields).Info("Estimate composed")
}

// LogRefreshOutcome logs a refresh run result for the audit trail.
func (el *EstimateLogger) LogRefreshOutcome(market, dateKey string, players int, err error) {
	entry := el.WithFields(logrus.Fields{
		"market":   market,
		"date_key": dateKey,
		"players":  players,
	})
	if err != nil {
		entry.WithError(err).Warn("Snapshot refresh failed")
		return
	}
	entry.Info("Snapshot refresh recorded")
}
