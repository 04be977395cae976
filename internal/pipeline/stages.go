package pipeline

import (
	"fmt"

	"github.com/yourusername/prop-edge/internal/models"
)

// Stage is one pure multiplier function. Stages receive the running
// probability (baseline with all earlier stage multipliers applied) so that
// band-gated stages see the already-adjusted value.
type Stage struct {
	Name string
	Fn   func(c models.Candidate, running float64) models.StageResult
}

// Stage names, in composition order.
const (
	StagePlatoon        = "platoon"
	StageHotCold        = "hot_cold"
	StagePark           = "park"
	StageWeather        = "weather"
	StageExploitability = "exploitability"
)

// Documented multiplier ranges. A multiplier outside its range is a defect
// in the stage, not a runtime condition to recover from.
const (
	platoonBoost = 1.07 // platoon: {1.00, 1.07}

	hotFormBoost    = 1.04 // hot/cold: {1.00, 1.02, 1.04, 1.04*1.02}
	activeFormBoost = 1.02

	parkFactorMin = 0.5 // park: [0.5, 2.0]
	parkFactorMax = 2.0

	weatherMultMin = 0.88 // weather: [0.88, 1.12]
	weatherMultMax = 1.12

	exploitBothBoost = 1.03 // exploitability: {1.00, 1.01, 1.03}
	exploitOneBoost  = 1.01
)

// Exploitability band: the stage only fires when the running probability
// sits in the moderate-power band. Reads the already-adjusted value.
const (
	exploitBandLo = 0.20
	exploitBandHi = 0.30
)

// Stages returns the stage set in fixed composition order:
// Platoon -> Hot/Cold -> Park -> Weather -> Exploitability.
// Multiplication commutes, but the explanation trail depends on this order.
func Stages() []Stage {
	return []Stage{
		{Name: StagePlatoon, Fn: platoonStage},
		{Name: StageHotCold, Fn: hotColdStage},
		{Name: StagePark, Fn: parkStage},
		{Name: StageWeather, Fn: weatherStage},
		{Name: StageExploitability, Fn: exploitabilityStage},
	}
}

// platoonStage boosts opposite-handed batter/pitcher matchups. Switch
// hitters take the opposite side of any known pitcher hand.
func platoonStage(c models.Candidate, _ float64) models.StageResult {
	result := models.StageResult{Name: StagePlatoon, Multiplier: 1.0}

	pitcher := c.Pitchers.Pitcher
	if pitcher == nil {
		return result
	}

	bats, throws := c.Bats, pitcher.Throws
	opposite := (bats == "L" && throws == "R") ||
		(bats == "R" && throws == "L") ||
		(bats == "S" && (throws == "L" || throws == "R"))
	if !opposite {
		return result
	}

	result.Multiplier = platoonBoost
	result.Applied = true
	result.Explanation = fmt.Sprintf("platoon edge: %s batter vs %s pitcher (x%.2f)", bats, throws, platoonBoost)
	return result
}

// hotColdStage combines two independent recent-form boosts multiplicatively.
// Absent data contributes x1.00 for that factor.
func hotColdStage(c models.Candidate, _ float64) models.StageResult {
	result := models.StageResult{Name: StageHotCold, Multiplier: 1.0}

	hr7 := floatOr(c.Form.HRLast7d, 0)
	pa50 := floatOr(c.Form.PALast50, 0)

	if hr7 > 0 {
		result.Multiplier *= hotFormBoost
	}
	if pa50 > 0 {
		result.Multiplier *= activeFormBoost
	}
	if result.Multiplier == 1.0 {
		return result
	}

	result.Applied = true
	result.Explanation = fmt.Sprintf("recent form: %.0f HR last 7d, %.0f PA last 50 (x%.4f)", hr7, pa50, result.Multiplier)
	return result
}

// parkStage applies the venue factor with a batter-type interaction:
// suppressive parks are softened halfway to neutral for pulled-flyball
// power hitters, favorable parks amplified for flyball-heavy hard contact.
func parkStage(c models.Candidate, _ float64) models.StageResult {
	result := models.StageResult{Name: StagePark, Multiplier: 1.0}

	if !hasFloat(c.Park.Factor) {
		return result
	}
	factor := clamp(*c.Park.Factor, 0, parkFactorMax)

	pull := floatOr(c.Profile.PullPct, 0)
	la := floatOr(c.Profile.LAP50, 0)
	ev75 := floatOr(c.Profile.EVP75, 0)
	fb := floatOr(c.Profile.FBPct, 0)

	adjusted := factor
	note := ""
	switch {
	case factor < 1.0 && pull >= 40 && la >= 20 && la <= 35 && ev75 >= 108:
		// soften the penalty halfway to neutral
		adjusted = 1 - (1-factor)*0.5
		note = "suppressive park softened for pulled-flyball power"
	case factor >= 1.0 && fb > 40 && ev75 >= 107:
		adjusted = factor * 1.1
		note = "favorable park amplified for flyball-heavy profile"
	}

	result.Multiplier = clamp(adjusted, parkFactorMin, parkFactorMax)
	result.Applied = result.Multiplier != 1.0
	if note != "" {
		result.Explanation = fmt.Sprintf("park factor %.2f -> %.2f: %s", factor, result.Multiplier, note)
	} else if result.Applied {
		result.Explanation = fmt.Sprintf("park factor %.2f", result.Multiplier)
	}
	return result
}

// weatherStage folds temperature and wind-out-to-center indexes into one
// bounded multiplier. No-op when no forecast exists or the roof is closed.
// The fragment always records conditions, applied or not.
func weatherStage(c models.Candidate, _ float64) models.StageResult {
	result := models.StageResult{Name: StageWeather, Multiplier: 1.0}

	wx := c.Weather
	if wx == nil {
		return result
	}

	temp := floatOr(wx.TempF, 72)
	wind := floatOr(wx.WindMph, 0)
	windDeg := floatOr(wx.WindDeg, 0)
	roof := wx.Roof
	if roof == "" {
		roof = "open"
	}

	if wx.RoofClosed() {
		result.Explanation = fmt.Sprintf("weather: temp %.0fF, wind %.0f mph @ %.0f deg, roof %s (x1.00)", temp, wind, windDeg, roof)
		return result
	}

	tempIx := clamp((temp-72)*0.002, -0.06, 0.08)

	// wind blowing toward straightaway center: [320,360] U [0,40]
	outFlag := 0.0
	if (windDeg >= 320 && windDeg <= 360) || (windDeg >= 0 && windDeg <= 40) {
		outFlag = 1.0
	}
	windIx := clamp(outFlag*wind*0.006, 0, 0.10)

	sum := clamp(tempIx+windIx, -0.12, 0.12)
	result.Multiplier = clamp(1+sum, weatherMultMin, weatherMultMax)
	result.Applied = sum >= 0.005 || sum <= -0.005
	result.Explanation = fmt.Sprintf("weather: temp %.0fF, wind %.0f mph @ %.0f deg, roof %s (x%.2f)", temp, wind, windDeg, roof, result.Multiplier)
	return result
}

// exploitabilityStage rewards predictable pitch mixes the batter punishes,
// but only inside the moderate-power probability band.
func exploitabilityStage(c models.Candidate, running float64) models.StageResult {
	result := models.StageResult{Name: StageExploitability, Multiplier: 1.0}

	if running < exploitBandLo || running > exploitBandHi {
		return result
	}
	pitcher := c.Pitchers.Pitcher
	if pitcher == nil || len(pitcher.RepertoireUsage) == 0 {
		return result
	}

	pitch, usage := pitcher.PrimaryPitch()
	usage = fractionOf(usage)
	predictable := usage >= 0.45

	damage := 0.0
	if c.DamageVsPitch != nil {
		damage = fractionOf(c.DamageVsPitch[pitch])
	}
	crushes := damage >= 0.50

	switch {
	case predictable && crushes:
		result.Multiplier = exploitBothBoost
		result.Explanation = fmt.Sprintf("repertoire: %s %.0f%% usage is predictable and batter crushes it (x%.2f)", pitch, usage*100, exploitBothBoost)
	case predictable:
		result.Multiplier = exploitOneBoost
		result.Explanation = fmt.Sprintf("repertoire: %s %.0f%% usage is predictable (x%.2f)", pitch, usage*100, exploitOneBoost)
	case crushes:
		result.Multiplier = exploitOneBoost
		result.Explanation = fmt.Sprintf("repertoire: batter crushes %s (x%.2f)", pitch, exploitOneBoost)
	default:
		return result
	}

	result.Applied = true
	return result
}
