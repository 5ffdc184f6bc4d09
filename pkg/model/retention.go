package model

import (
	"math"
	"time"
)

// halfLifeHours maps content complexity to the hours it takes the memory
// score to fall to 50%. Harder material is modeled as decaying faster: a
// policy choice, not a derived constant.
var halfLifeHours = map[int]float64{
	1: 72,
	2: 48,
	3: 36,
	4: 24,
	5: 18,
}

const defaultHalfLifeHours = 36

// HalfLife returns the retention half-life for a complexity rating.
// Ratings outside 1-5 degrade to the default rather than erroring.
func HalfLife(complexity int) time.Duration {
	hours, ok := halfLifeHours[complexity]
	if !ok {
		hours = defaultHalfLifeHours
	}
	return time.Duration(hours * float64(time.Hour))
}

// Retention computes the current memory score in [0, 100] for material of
// the given complexity learned at learnedAt, evaluated at now:
//
//	score = 100 * 0.5^(hoursElapsed / halfLife)
//
// Pure and deterministic. A now before learnedAt clamps to 100.
func Retention(complexity int, learnedAt, now time.Time) float64 {
	hours := now.Sub(learnedAt).Hours()
	halfLife := HalfLife(complexity).Hours()
	score := 100 * math.Pow(0.5, hours/halfLife)
	return math.Min(math.Max(score, 0), 100)
}
