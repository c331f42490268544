package models

import "time"

// Plan is a purchasable credits package.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Price    float64  `json:"price"`
	Credits  int      `json:"credits"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// CreditEvent is one entry of the credits ledger (purchase, consumption,
// bonus). Amount is negative for consumption.
type CreditEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
