package models

// ProceedOrder is the payment submission from the hosted form. The card
// number never leaves the validation path; only its last 4 digits persist.
type ProceedOrder struct {
	OrderID    string `json:"order_id"`
	CardBrand  string `json:"card_brand"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
}

// ProceedResult is returned on a successful payment.
type ProceedResult struct {
	Order       *Order       `json:"order"`
	Transaction *Transaction `json:"transaction"`
	RedirectURL string       `json:"redirect_url"`
}
