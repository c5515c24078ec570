package disclosures

import (
	"testing"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
)

func TestClassifyTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  models.DisclosureCategory
	}{
		{"quarterly report", "분기보고서 (2025.03)", models.CategoryQuarterly},
		{"half-year report is unmatched", "반기보고서 (2025.06)", models.CategoryOther},
		{"annual report", "사업보고서 (2024.12)", models.CategoryAnnual},
		{"material event", "주요사항보고서(유상증자결정)", models.CategoryMaterial},
		{"fair disclosure", "공정공시 영업실적 전망", models.CategoryFairDisclosure},
		{"quarterly wins over material", "분기보고서 및 주요사항보고서", models.CategoryQuarterly},
		{"unmatched title", "임원ㆍ주요주주특정증권등소유상황보고서", models.CategoryOther},
		{"empty title", "", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTitle(tt.title); got != tt.want {
				t.Errorf("ClassifyTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
