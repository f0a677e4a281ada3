package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "CREATED"
	OrderStatusPaid    OrderStatus = "PAID"
)

// Order is a partner's payment request. Amount is the authoritative charge
// base; it is never taken from the paying client. Status moves CREATED→PAID
// exactly once and the order is immutable after that.
type Order struct {
	ID             string          `json:"id"`
	PartnerID      string          `json:"partner_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description"`
	NeedCommission bool            `json:"need_commission"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateOrder is the request payload for order creation.
type CreateOrder struct {
	PartnerID      string          `json:"partner_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description"`
	NeedCommission bool            `json:"need_commission"`
}
