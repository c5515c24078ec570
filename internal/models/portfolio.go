package models

import "time"

// Portfolio groups a user's holdings. One portfolio belongs to exactly
// one user; deletion removes the record and its holdings by association,
// with no further cascading business rules.
type Portfolio struct {
	ID        string    `json:"id" badgerhold:"key"`
	UserID    string    `json:"user_id" badgerhold:"index"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holding is a position inside a portfolio. ConfidenceLevel is a user
// annotation (1-100) and is unrelated to the derived weather confidence.
type Holding struct {
	ID              string     `json:"id" badgerhold:"key"`
	PortfolioID     string     `json:"portfolio_id" badgerhold:"index"`
	SecurityCode    string     `json:"security_code"`
	Shares          float64    `json:"shares"`
	AverageCost     float64    `json:"average_cost"`
	LivePrice       *float64   `json:"live_price,omitempty"`
	ConfidenceLevel int        `json:"confidence_level"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PricedAt        *time.Time `json:"priced_at,omitempty"`
}

// Alert is a user preference for notification on a security.
type Alert struct {
	ID           string    `json:"id" badgerhold:"key"`
	UserID       string    `json:"user_id" badgerhold:"index"`
	SecurityCode string    `json:"security_code"`
	Kind         string    `json:"kind"` // "condition_change", "disclosure", "price"
	Threshold    float64   `json:"threshold,omitempty"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
