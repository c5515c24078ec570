package common

import (
	"github.com/google/uuid"
)

// NewPortfolioID generates a unique portfolio ID.
// Format: pf_<uuid>
func NewPortfolioID() string {
	return "pf_" + uuid.New().String()
}

// NewHoldingID generates a unique holding ID.
// Format: hd_<uuid>
func NewHoldingID() string {
	return "hd_" + uuid.New().String()
}

// NewAlertID generates a unique alert ID.
// Format: al_<uuid>
func NewAlertID() string {
	return "al_" + uuid.New().String()
}
