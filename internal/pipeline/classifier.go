package pipeline

import "github.com/yourusername/prop-edge/internal/models"

// archetypeConfidence is a fixed scalar; the classification is descriptive
// metadata and never feeds back into the probability.
const archetypeConfidence = 0.7

// Classify buckets a batted-ball profile into an archetype tag. The
// decision ladder is evaluated top-to-bottom, first match wins.
func Classify(profile models.BattedBallProfile) models.Archetype {
	hrPerPA := floatOr(profile.HRPerPA, 0)
	ev50 := floatOr(profile.EVP50, 0)
	ev75 := floatOr(profile.EVP75, 0)
	la75 := floatOr(profile.LAP75, 0)

	tag := models.ArchetypeBalanced
	switch {
	case hrPerPA >= 0.06 && ev75 >= 105:
		tag = models.ArchetypeBarrelBomber
	case hrPerPA >= 0.035 && la75 >= 28 && la75 <= 36 && ev50 >= 97:
		tag = models.ArchetypeLoftOpportunist
	case hrPerPA <= 0.015 && ev50 <= 94:
		tag = models.ArchetypeVarianceOnly
	}

	return models.Archetype{Tag: tag, Confidence: archetypeConfidence}
}
