package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
)

// Guard corrects a mis-attributed opposing pitcher before any matchup stage
// runs. Upstream stat feeds occasionally record the batter's own team-mate
// as the opposing pitcher; left uncorrected that produces a silently wrong
// platoon multiplier, so the fix happens here rather than inside a stage.
//
// The correction is not an error: the candidate is tagged with a PitcherFix
// value for observability and flows on.
func Guard(candidate models.Candidate, logger *logrus.Logger) models.Candidate {
	pitcher := candidate.Pitchers.Pitcher
	if pitcher == nil {
		return candidate
	}

	ownTeam := candidate.TeamIdentity()
	pitcherTeam := pitcher.TeamIdentity()
	if ownTeam == "" || pitcherTeam == "" || ownTeam != pitcherTeam {
		return candidate
	}

	if alt := candidate.Pitchers.OpponentPitcher; alt != nil {
		candidate.Pitchers.Pitcher = alt
		candidate.PitcherFix = models.PitcherFixSwapped
	} else {
		candidate.Pitchers.Pitcher = nil
		candidate.PitcherFix = models.PitcherFixCleared
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"candidate_id": candidate.ID,
			"team":         candidate.Team,
			"fix":          candidate.PitcherFix,
		}).Debug("Corrected self-attributed opposing pitcher")
	}
	pitcherFixesTotal.WithLabelValues(candidate.PitcherFix).Inc()

	return candidate
}
