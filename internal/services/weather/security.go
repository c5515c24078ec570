package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// MatchDisclosures returns the disclosures attributable to a security:
// exact code match, or company name containing the first two characters
// of the security's name. The name-prefix fallback is deliberately loose;
// disclosure counts (and therefore scores and conditions) are defined
// relative to it, so it must not be tightened to exact-match-only.
func MatchDisclosures(sec models.Security, disclosures []models.Disclosure) []models.Disclosure {
	prefix := namePrefix(sec.Name, 2)

	matched := make([]models.Disclosure, 0, 4)
	for _, d := range disclosures {
		if d.SecurityCode != "" && d.SecurityCode == sec.Code {
			matched = append(matched, d)
			continue
		}
		if prefix != "" && strings.Contains(d.CompanyName, prefix) {
			matched = append(matched, d)
		}
	}
	return matched
}

// BuildSecurityWeather derives one SecurityWeather record per active
// security that has both a code and a name. Output preserves the input
// order. A failure in one security skips that record only.
func BuildSecurityWeather(securities []models.Security, disclosures []models.Disclosure, logger arbor.ILogger) []models.SecurityWeather {
	now := time.Now()
	records := make([]models.SecurityWeather, 0, len(securities))

	for _, sec := range securities {
		if !sec.Active || sec.Code == "" || sec.Name == "" {
			continue
		}

		record, ok := buildOne(sec, disclosures, now, logger)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	return records
}

func buildOne(sec models.Security, disclosures []models.Disclosure, now time.Time, logger arbor.ILogger) (record models.SecurityWeather, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Warn().
					Str("code", sec.Code).
					Str("panic", fmt.Sprintf("%v", r)).
					Msg("Skipping security after generation panic")
			}
			ok = false
		}
	}()

	matched := MatchDisclosures(sec, disclosures)
	score := Score(len(matched), sec.Sector)
	outlook := MapOutlook(sec.Name, sec.Sector, score, len(matched))

	return models.SecurityWeather{
		Code:           sec.Code,
		CompanyName:    sec.Name,
		Condition:      MapCondition(score),
		Forecast:       outlook.Forecast,
		Confidence:     outlook.Confidence,
		Recommendation: outlook.Recommendation,
		MarketCap:      sec.MarketCap,
		Sector:         sec.Sector,
		GeneratedAt:    now,
	}, true
}

// namePrefix returns the first n runes of a name. Rune-based so Korean
// names take the first two syllables, not the first two bytes.
func namePrefix(name string, n int) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) < n {
		return ""
	}
	return string(runes[:n])
}
