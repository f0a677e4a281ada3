package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partnerpay/paymentpage/internal/cards"
	"github.com/partnerpay/paymentpage/internal/expiry"
	"github.com/partnerpay/paymentpage/internal/override"
	"github.com/partnerpay/paymentpage/internal/verdict"
	"github.com/partnerpay/paymentpage/payment/models"
)

// ValidationError reports a recoverable card input error. The verdict is
// forwarded verbatim to the caller; it never carries the card number.
type ValidationError struct {
	Field   string
	Verdict verdict.Verdict
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Verdict.Code)
}

// Service is the payment engine: card validation, commission and the order
// lifecycle, on top of an injected brand catalog and override registry.
type Service struct {
	repo      *Repository
	catalog   *cards.Catalog
	overrides *override.Registry
	cfg       *Config
}

func NewService(repo *Repository, catalog *cards.Catalog, overrides *override.Registry, cfg *Config) *Service {
	if catalog == nil {
		catalog = cards.DefaultCatalog()
	}
	if overrides == nil {
		overrides = override.NewRegistry()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{
		repo:      repo,
		catalog:   catalog,
		overrides: overrides,
		cfg:       cfg,
	}
}

// Catalog exposes the brand catalog the service validates against.
func (s *Service) Catalog() *cards.Catalog {
	return s.catalog
}

func (s *Service) CreatePartner(req models.CreatePartner) (*models.Partner, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Verdict: verdict.Fail(verdict.CodeEmpty)}
	}
	partner := &models.Partner{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		ColorScheme:        req.ColorScheme,
		SuccessRedirectURI: req.SuccessRedirectURI,
	}
	if partner.ColorScheme == "" {
		partner.ColorScheme = "light"
	}
	if err := s.repo.CreatePartner(partner); err != nil {
		return nil, fmt.Errorf("creating partner: %w", err)
	}
	return partner, nil
}

func (s *Service) GetPartner(partnerID string) (*models.Partner, error) {
	partner, err := s.repo.GetPartner(partnerID)
	if err != nil {
		return nil, fmt.Errorf("finding partner: %w", err)
	}
	return partner, nil
}

// CreateOrder registers a new CREATED order for a known partner. The stored
// amount is what will later be charged, regardless of the paying client.
func (s *Service) CreateOrder(req models.CreateOrder) (*models.Order, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Verdict: verdict.Fail(verdict.CodeInvalid)}
	}
	if _, err := s.repo.GetPartner(req.PartnerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &ValidationError{Field: "partner_id", Verdict: verdict.Fail(verdict.CodeInvalid)}
		}
		return nil, fmt.Errorf("finding partner: %w", err)
	}

	order := &models.Order{
		ID:             uuid.New().String(),
		PartnerID:      req.PartnerID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Description:    req.Description,
		NeedCommission: req.NeedCommission,
		Status:         models.OrderStatusCreated,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrder(orderID string) (*models.Order, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}
	return order, nil
}

// ListTransactions returns the transactions recorded for an order.
func (s *Service) ListTransactions(orderID string) ([]*models.Transaction, error) {
	transactions, err := s.repo.ListTransactions(orderID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, nil
}

// CalculateCommission computes the fee a brand would add to an amount.
func (s *Service) CalculateCommission(brandName string, amount decimal.Decimal) (cards.CommissionResult, error) {
	brand, ok := s.catalog.Find(brandName)
	if !ok {
		return cards.CommissionResult{}, &ValidationError{
			Field:   "card_brand",
			Verdict: verdict.Fail(verdict.CodeUnsupported).With(cards.DetailSupported, s.catalog.Names()),
		}
	}
	result, err := cards.CalculateCommission(brand, amount)
	if err != nil {
		return cards.CommissionResult{}, fmt.Errorf("calculating commission: %w", err)
	}
	return result, nil
}

// Proceed validates the submitted card, computes the commission from the
// order's stored amount and performs the atomic CREATED→PAID transition.
// A missing or already-paid order fails with ErrNotFound either way.
func (s *Service) Proceed(ctx context.Context, req models.ProceedOrder) (*models.ProceedResult, error) {
	brand, ok := s.catalog.Find(req.CardBrand)
	if !ok {
		return nil, &ValidationError{
			Field:   "card_brand",
			Verdict: verdict.Fail(verdict.CodeUnsupported).With(cards.DetailSupported, s.catalog.Names()),
		}
	}

	if v := s.validateNumber(req); !v.Valid {
		return nil, &ValidationError{Field: "card_number", Verdict: v}
	}
	if v := s.validateExpiry(req); !v.Valid {
		return nil, &ValidationError{Field: "card_expiry", Verdict: v}
	}
	if v := s.validateCVV(req, brand); !v.Valid {
		return nil, &ValidationError{Field: "card_cvv", Verdict: v}
	}

	order, err := s.repo.GetOrder(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}

	commission := decimal.Zero
	total := order.Amount.Round(2)
	if order.NeedCommission {
		result, err := cards.CalculateCommission(brand, order.Amount)
		if err != nil {
			return nil, fmt.Errorf("calculating commission: %w", err)
		}
		commission = result.Commission
		total = result.TotalAmount
	}

	transaction := &models.Transaction{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		CardBrand:   brand.Name,
		CardLast4:   cards.LastN(cards.Normalize(req.CardNumber), 4),
		Status:      models.TransactionStatusSucceeded,
		Amount:      order.Amount,
		Commission:  commission,
		TotalAmount: total,
		Currency:    order.Currency,
		ProcessedAt: time.Now().UTC(),
	}

	updated, err := s.repo.ProceedOrder(ctx, order.ID, transaction)
	if err != nil {
		return nil, fmt.Errorf("proceeding order: %w", err)
	}

	return &models.ProceedResult{
		Order:       updated,
		Transaction: transaction,
		RedirectURL: "/success?orderId=" + updated.ID,
	}, nil
}

func (s *Service) validateNumber(req models.ProceedOrder) verdict.Verdict {
	if v, ok := s.overrides.Apply(override.KindNumber, req.CardNumber, req.CardNumber); ok {
		return v
	}
	return s.catalog.ValidateNumber(req.CardNumber)
}

func (s *Service) validateExpiry(req models.ProceedOrder) verdict.Verdict {
	if v, ok := s.overrides.Apply(override.KindExpiry, req.CardExpiry, req.CardNumber); ok {
		return v
	}
	return expiry.Validate(req.CardExpiry, expiry.Options{MaxFutureYears: s.cfg.MaxFutureYears})
}

func (s *Service) validateCVV(req models.ProceedOrder, brand cards.Brand) verdict.Verdict {
	if v, ok := s.overrides.Apply(override.KindCVV, req.CardCVV, req.CardNumber); ok {
		return v
	}
	return brand.ValidateCVV(req.CardCVV)
}
