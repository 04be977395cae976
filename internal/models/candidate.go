package models

import (
	"strings"
	"time"
)

// PitcherFix values recorded by the input guard when it corrects a
// mis-attributed opposing pitcher.
const (
	PitcherFixSwapped = "swapped_to_opponent"
	PitcherFixCleared = "cleared_bad_self_pitcher"
)

// BattedBallProfile holds pre-computed batted-ball percentiles for a batter.
// All fields are optional; a nil pointer means the upstream source had no data.
type BattedBallProfile struct {
	EVP50   *float64 `json:"ev_p50"`   // median exit velocity (mph)
	EVP75   *float64 `json:"ev_p75"`   // 75th percentile exit velocity (mph)
	LAP50   *float64 `json:"la_p50"`   // median launch angle (degrees)
	LAP75   *float64 `json:"la_p75"`   // 75th percentile launch angle (degrees)
	PullPct *float64 `json:"pull_pct"` // pulled batted-ball percentage
	FBPct   *float64 `json:"fb_pct"`   // fly-ball percentage
	HRPerPA *float64 `json:"hr_per_pa"`
}

// Pitcher describes one pitcher as reported by the upstream stats source.
// Team identity may arrive in any of three fields depending on the provider.
type Pitcher struct {
	Name            string             `json:"name"`
	Team            string             `json:"team"`
	TeamAbbr        string             `json:"team_abbr"`
	TeamID          string             `json:"team_id"`
	Throws          string             `json:"throws"` // "L" or "R", empty if unknown
	RepertoireUsage map[string]float64 `json:"repertoire_usage"`
}

// TeamIdentity returns the first non-empty team identifier, lower-cased.
func (p *Pitcher) TeamIdentity() string {
	for _, t := range []string{p.Team, p.TeamAbbr, p.TeamID} {
		if t != "" {
			return strings.ToLower(strings.TrimSpace(t))
		}
	}
	return ""
}

// PrimaryPitch returns the most-used pitch type and its usage share.
// Usage may be reported as a percentage (0-100) or a fraction (0-1).
func (p *Pitcher) PrimaryPitch() (pitch string, usage float64) {
	for name, u := range p.RepertoireUsage {
		if u > usage || (u == usage && name < pitch) {
			pitch = name
			usage = u
		}
	}
	return pitch, usage
}

// PitcherContext carries the pitcher the batter is recorded to face plus the
// opposing starter as an alternate. Upstream sources occasionally attribute
// the batter's own team-mate as the opposing pitcher; the guard corrects this.
type PitcherContext struct {
	Pitcher         *Pitcher `json:"pitcher"`
	OpponentPitcher *Pitcher `json:"opponent_pitcher"`
}

// RecentForm holds short-window performance counts.
type RecentForm struct {
	HRLast7d *float64 `json:"hr_last_7d"`
	PALast50 *float64 `json:"pa_last_50"`
}

// Park holds the venue factor for the candidate's market (1.0 is neutral).
type Park struct {
	Factor *float64 `json:"factor"`
}

// Weather holds game-time conditions. Optional; nil means no forecast.
type Weather struct {
	TempF   *float64 `json:"temp_f"`
	WindMph *float64 `json:"wind_mph"`
	WindDeg *float64 `json:"wind_deg"`
	Roof    string   `json:"roof"` // "open", "closed", "retractable", "" if unknown
}

// Candidate is one player's context for one market, built per request from
// upstream stat sources and consumed once by the adjustment pipeline.
type Candidate struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Team                string             `json:"team"`
	Position            string             `json:"position"`
	Bats                string             `json:"bats"` // "L", "R", "S", empty if unknown
	Market              string             `json:"market"`
	BaselineProbability float64            `json:"baseline_probability"`
	Profile             BattedBallProfile  `json:"batted_ball_profile"`
	DamageVsPitch       map[string]float64 `json:"damage_vs_pitch"`
	Pitchers            PitcherContext     `json:"pitcher_context"`
	Form                RecentForm         `json:"recent_form"`
	Park                Park               `json:"park"`
	Weather             *Weather           `json:"weather,omitempty"`
	GameTime            time.Time          `json:"game_time"`

	// PitcherFix is set by the input guard when it self-corrects a bad
	// opposing-pitcher attribution. Empty when no correction was needed.
	PitcherFix string `json:"_pitcherFix,omitempty"`
}

// TeamIdentity returns the candidate's own team, lower-cased for comparisons.
func (c *Candidate) TeamIdentity() string {
	return strings.ToLower(strings.TrimSpace(c.Team))
}

// RoofClosed reports whether the venue roof is recorded as closed.
func (w *Weather) RoofClosed() bool {
	return w != nil && strings.EqualFold(w.Roof, "closed")
}
