// Package disclosures provides fetching, parsing, and classification of
// regulatory filings. Classification and cleaning are pure functions with
// no I/O; the service layer owns transport and caching.
package disclosures

import (
	"strings"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

// titleRules maps filing-title tokens to categories, in priority order.
// First match wins; unmatched titles resolve to CategoryOther.
var titleRules = []struct {
	token    string
	category models.DisclosureCategory
}{
	{"분기보고서", models.CategoryQuarterly},
	{"사업보고서", models.CategoryAnnual},
	{"주요사항보고", models.CategoryMaterial},
	{"공정공시", models.CategoryFairDisclosure},
}

// ClassifyTitle determines the disclosure category from a filing title.
func ClassifyTitle(title string) models.DisclosureCategory {
	for _, rule := range titleRules {
		if strings.Contains(title, rule.token) {
			return rule.category
		}
	}
	return models.CategoryOther
}
