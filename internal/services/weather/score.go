// Package weather derives market-weather analytics from the security
// catalog and recent regulatory disclosures. The whole pipeline is a
// synchronous, side-effect-free pass over data already in memory; each
// request runs its own copy with no shared mutable state.
package weather

// sectorBonus is the fixed per-sector stability bonus. Sectors outside
// the table contribute 0.
var sectorBonus = map[string]int{
	"의료정밀": 15,
	"화학":   10,
	"금융업":  8,
	"전기전자": 5,
	"서비스업": 3,
	"운수장비": 0,
	"건설업":  -5,
}

// Score computes the 0-100 analysis score for one security from its
// recent disclosure count and sector. Low disclosure volume reads as
// stability; heavy volume reads as turbulence.
func Score(disclosureCount int, sector string) int {
	score := 50

	switch {
	case disclosureCount == 0:
		score += 10
	case disclosureCount <= 3:
		score += 5
	default:
		score -= 15
	}

	score += sectorBonus[sector]

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
