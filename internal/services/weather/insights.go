package weather

import (
	"fmt"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// MaxInsights caps how many insight strings one analysis produces.
const MaxInsights = 4

// fallbackInsights is used when upstream data is unavailable.
var fallbackInsights = []string{
	"시장 데이터를 불러오는 중입니다.",
	"잠시 후 다시 확인해 주세요.",
}

// BuildInsights derives up to MaxInsights human-readable insight strings
// from the aggregated records and raw disclosure volume. Checks run in a
// fixed priority order; the first MaxInsights qualifying insights win.
func BuildInsights(market models.MarketWeather, sectors []models.SectorWeather, disclosureCount int) []string {
	insights := make([]string, 0, MaxInsights)

	add := func(s string) bool {
		if len(insights) >= MaxInsights {
			return false
		}
		insights = append(insights, s)
		return true
	}

	switch market.Condition {
	case models.MarketSunny:
		add(fmt.Sprintf("시장이 맑음 상태입니다. 상승 종목 비중이 %d%%에 달합니다.", market.WindSpeed))
	case models.MarketStormy:
		add("시장이 폭풍 상태입니다. 신규 진입에 주의가 필요합니다.")
	}

	if len(sectors) > 0 {
		top := sectors[0]
		if top.AverageChange >= 0 {
			add(fmt.Sprintf("%s 업종이 %.2f%%로 가장 강한 흐름을 보이고 있습니다.", top.Sector, top.AverageChange))
		} else {
			add(fmt.Sprintf("%s 업종이 %.2f%%로 상대적으로 선방하고 있습니다.", top.Sector, top.AverageChange))
		}

		bottom := sectors[len(sectors)-1]
		if bottom.AverageChange < -1 {
			add(fmt.Sprintf("%s 업종이 %.2f%%로 약세입니다. 보유 비중 점검이 필요합니다.", bottom.Sector, bottom.AverageChange))
		}
	}

	if disclosureCount > 10 {
		add(fmt.Sprintf("최근 공시가 %d건으로 많습니다. 변동성 확대에 유의하세요.", disclosureCount))
	}

	if market.Humidity > 80 {
		add("시장 불확실성 지표가 높습니다. 분산 투자를 권장합니다.")
	}

	return insights
}

// FallbackInsights returns the loading placeholders used when upstream
// data cannot be fetched.
func FallbackInsights() []string {
	out := make([]string, len(fallbackInsights))
	copy(out, fallbackInsights)
	return out
}
