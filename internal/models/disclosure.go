package models

import "time"

// DisclosureCategory classifies a regulatory filing by its title.
type DisclosureCategory string

const (
	CategoryQuarterly      DisclosureCategory = "quarterly"
	CategoryAnnual         DisclosureCategory = "annual"
	CategoryMaterial       DisclosureCategory = "material"
	CategoryFairDisclosure DisclosureCategory = "fair-disclosure"
	CategoryOther          DisclosureCategory = "other"
)

// Disclosure is a regulatory filing fetched from the disclosure source.
// Disclosures are not persisted authoritatively; each aggregation pass
// works from a freshly fetched (or TTL-cached) batch.
type Disclosure struct {
	ID           string             `json:"id"`
	SecurityCode string             `json:"security_code,omitempty"` // empty for market-wide filings
	CompanyName  string             `json:"company_name"`
	Title        string             `json:"title"`
	Category     DisclosureCategory `json:"category"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	SourceURL    string             `json:"source_url,omitempty"`
	Summary      string             `json:"summary,omitempty"`
}

// RawFiling is the untyped shape returned by a disclosure provider before
// date parsing, recency filtering, classification, and remark cleaning.
type RawFiling struct {
	ID           string `json:"rcept_no"`
	SecurityCode string `json:"stock_code"`
	CompanyName  string `json:"corp_name"`
	Title        string `json:"report_nm"`
	SubmittedRaw string `json:"rcept_dt"` // YYYYMMDD, ISO-8601, or unix seconds/millis
	SourceURL    string `json:"source_url"`
	Remark       string `json:"rm"`
}
