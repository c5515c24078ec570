package weather

import (
	"fmt"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// MapCondition converts an analysis score into the per-security condition.
// The banding is total and monotonic; downstream aggregation depends on
// these exact cutoffs.
func MapCondition(score int) models.Condition {
	switch {
	case score >= 80:
		return models.ConditionSunny
	case score >= 65:
		return models.ConditionCloudy
	case score >= 50:
		return models.ConditionDrizzle
	case score >= 35:
		return models.ConditionRainy
	case score >= 20:
		return models.ConditionWindy
	default:
		return models.ConditionStormy
	}
}

// Outlook is the templated forecast output for one security.
type Outlook struct {
	Forecast       string
	Recommendation models.Recommendation
	Confidence     int
}

// MapOutlook produces the forecast text, recommendation, and confidence
// for a security from its score and recent disclosure count.
func MapOutlook(name, sector string, score, disclosureCount int) Outlook {
	if sector == "" {
		sector = "기타"
	}

	confidence := score*8/10 + 20

	var forecast string
	var recommendation models.Recommendation

	switch {
	case disclosureCount == 0:
		if score >= 70 {
			forecast = fmt.Sprintf("%s(%s)은(는) 공시 없이 안정적인 흐름이 예상됩니다.", name, sector)
			recommendation = models.RecommendBuy
		} else {
			forecast = fmt.Sprintf("%s(%s)은(는) 뚜렷한 재료 없이 관망세가 예상됩니다.", name, sector)
			recommendation = models.RecommendHold
		}
	case disclosureCount <= 2:
		if score >= 60 {
			forecast = fmt.Sprintf("%s(%s)은(는) 최근 공시가 긍정적 신호로 읽힙니다.", name, sector)
			recommendation = models.RecommendBuy
		} else {
			forecast = fmt.Sprintf("%s(%s)은(는) 최근 공시 영향을 지켜볼 필요가 있습니다.", name, sector)
			recommendation = models.RecommendHold
		}
	default:
		if score >= 50 {
			forecast = fmt.Sprintf("%s(%s)은(는) 공시가 잦아 변동성에 유의해야 합니다.", name, sector)
			recommendation = models.RecommendHold
		} else {
			forecast = fmt.Sprintf("%s(%s)은(는) 공시 급증으로 불확실성이 커졌습니다.", name, sector)
			recommendation = models.RecommendSell
			confidence -= 10
			if confidence < 30 {
				confidence = 30
			}
		}
	}

	return Outlook{
		Forecast:       forecast,
		Recommendation: recommendation,
		Confidence:     confidence,
	}
}
