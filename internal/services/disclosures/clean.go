package disclosures

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// marketCodeTokens are the source's internal exchange-code markers that
// sometimes arrive alone in the remark field. A remark consisting of
// nothing but these tokens carries no information and is blanked.
var marketCodeTokens = map[string]bool{
	"유": true, // KOSPI listing marker
	"코": true, // KOSDAQ listing marker
	"기": true, // other corporation marker
	"넥": true, // KONEX listing marker
	"채": true, // bond issuer marker
	"공": true, // public offering marker
	"정": true, // correction marker
}

// CleanRemark normalizes the free-text remark attached to a filing.
// Markup fragments are stripped, then remarks that are pure market-code
// tokens are blanked; genuine summaries pass through unchanged.
func CleanRemark(remark string) string {
	text := strings.TrimSpace(remark)
	if text == "" {
		return ""
	}

	// The feed occasionally wraps remarks in markup fragments.
	if strings.ContainsAny(text, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = strings.TrimSpace(doc.Text())
		}
	}

	if isPureMarketCode(text) {
		return ""
	}

	return text
}

// isPureMarketCode reports whether a remark consists only of market-code
// tokens and separators.
func isPureMarketCode(text string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '·'
	})
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !marketCodeTokens[f] {
			return false
		}
	}
	return true
}
