package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction settles an order. Created exactly once per successful proceed
// call; only the last 4 digits of the card number are ever stored.
type Transaction struct {
	ID          string            `json:"id"`
	OrderID     string            `json:"order_id"`
	CardBrand   string            `json:"card_brand"`
	CardLast4   string            `json:"card_last4"`
	Status      TransactionStatus `json:"status"`
	Amount      decimal.Decimal   `json:"amount"`
	Commission  decimal.Decimal   `json:"commission"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Currency    string            `json:"currency"`
	ProcessedAt time.Time         `json:"processed_at"`
}
