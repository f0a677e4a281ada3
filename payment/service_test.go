package payment_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/partnerpay/paymentpage/internal/override"
	"github.com/partnerpay/paymentpage/payment"
	"github.com/partnerpay/paymentpage/payment/models"
	"github.com/partnerpay/paymentpage/plugins/testcards"
)

func newService(t *testing.T) (*payment.Service, *models.Partner) {
	t.Helper()
	service := payment.NewService(payment.NewRepository(), nil, nil, nil)
	partner, err := service.CreatePartner(models.CreatePartner{Name: "shop"})
	require.NoError(t, err)
	return service, partner
}

func createOrder(t *testing.T, service *payment.Service, partnerID string, needCommission bool) *models.Order {
	t.Helper()
	order, err := service.CreateOrder(models.CreateOrder{
		PartnerID:      partnerID,
		Amount:         decimal.NewFromInt(1000),
		Currency:       "USD",
		Description:    "test order",
		NeedCommission: needCommission,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCreated, order.Status)
	return order
}

func visaProceed(orderID string) models.ProceedOrder {
	return models.ProceedOrder{
		OrderID:    orderID,
		CardBrand:  "VISA",
		CardNumber: "4242 4242 4242 4242",
		CardExpiry: "12/30",
		CardCVV:    "123",
	}
}

func TestCreateOrder_UnknownPartner(t *testing.T) {
	service := payment.NewService(payment.NewRepository(), nil, nil, nil)

	_, err := service.CreateOrder(models.CreateOrder{
		PartnerID: "no-such-partner",
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
	})

	var ve *payment.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "partner_id", ve.Field)
}

func TestProceed_Success(t *testing.T) {
	service, partner := newService(t)
	order := createOrder(t, service, partner.ID, true)

	result, err := service.Proceed(context.Background(), visaProceed(order.ID))
	require.NoError(t, err)

	require.Equal(t, models.OrderStatusPaid, result.Order.Status)
	require.Equal(t, models.TransactionStatusSucceeded, result.Transaction.Status)
	require.Equal(t, "VISA", result.Transaction.CardBrand)
	require.Equal(t, "4242", result.Transaction.CardLast4)
	// 1% of the stored amount, not anything client-supplied
	require.True(t, result.Transaction.Commission.Equal(decimal.NewFromInt(10)),
		"commission = %s", result.Transaction.Commission)
	require.True(t, result.Transaction.TotalAmount.Equal(decimal.NewFromInt(1010)),
		"total = %s", result.Transaction.TotalAmount)
	require.Equal(t, "/success?orderId="+order.ID, result.RedirectURL)

	transactions, err := service.ListTransactions(order.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
}

func TestProceed_NoCommission(t *testing.T) {
	service, partner := newService(t)
	order := createOrder(t, service, partner.ID, false)

	result, err := service.Proceed(context.Background(), visaProceed(order.ID))
	require.NoError(t, err)
	require.True(t, result.Transaction.Commission.IsZero())
	require.True(t, result.Transaction.TotalAmount.Equal(order.Amount))
}

func TestProceed_ValidationErrors(t *testing.T) {
	service, partner := newService(t)
	order := createOrder(t, service, partner.ID, true)

	cases := []struct {
		name  string
		mod   func(*models.ProceedOrder)
		field string
	}{
		{"unknown brand", func(r *models.ProceedOrder) { r.CardBrand = "AMEX" }, "card_brand"},
		{"bad number", func(r *models.ProceedOrder) { r.CardNumber = "4242424242424241" }, "card_number"},
		{"unsupported number", func(r *models.ProceedOrder) { r.CardNumber = "9999999999999999" }, "card_number"},
		{"expired date", func(r *models.ProceedOrder) { r.CardExpiry = "01/20" }, "card_expiry"},
		{"bad cvv", func(r *models.ProceedOrder) { r.CardCVV = "12" }, "card_cvv"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := visaProceed(order.ID)
			c.mod(&req)

			_, err := service.Proceed(context.Background(), req)
			var ve *payment.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, c.field, ve.Field)
		})
	}

	// Nothing above may have touched the order.
	current, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCreated, current.Status)
}

func TestProceed_AlreadyPaidLooksMissing(t *testing.T) {
	service, partner := newService(t)
	order := createOrder(t, service, partner.ID, true)

	_, err := service.Proceed(context.Background(), visaProceed(order.ID))
	require.NoError(t, err)

	_, err = service.Proceed(context.Background(), visaProceed(order.ID))
	require.ErrorIs(t, err, payment.ErrNotFound)

	_, err = service.Proceed(context.Background(), visaProceed("missing-order"))
	require.ErrorIs(t, err, payment.ErrNotFound)
}

// Two concurrent proceed calls on one CREATED order: exactly one succeeds,
// and exactly one transaction exists afterwards.
func TestProceed_ConcurrentSingleWinner(t *testing.T) {
	service, partner := newService(t)
	order := createOrder(t, service, partner.ID, true)

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Proceed(context.Background(), visaProceed(order.ID))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.True(t, errors.Is(err, payment.ErrNotFound), "unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded)

	transactions, err := service.ListTransactions(order.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	current, err := service.GetOrder(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPaid, current.Status)
}

func TestProceed_TestCardOverride(t *testing.T) {
	overrides := override.NewRegistry()
	overrides.Use(testcards.New(""))
	service := payment.NewService(payment.NewRepository(), nil, overrides, nil)

	partner, err := service.CreatePartner(models.CreatePartner{Name: "shop"})
	require.NoError(t, err)
	order := createOrder(t, service, partner.ID, false)

	// 4111... with an expired date passes because the override resolves the
	// expiry check before the default rule runs.
	req := models.ProceedOrder{
		OrderID:    order.ID,
		CardBrand:  "VISA",
		CardNumber: "4111111111111111",
		CardExpiry: "01/20",
		CardCVV:    "123",
	}
	_, err = service.Proceed(context.Background(), req)
	require.NoError(t, err)

	// Other numbers still hit the default rule.
	order2 := createOrder(t, service, partner.ID, false)
	req2 := visaProceed(order2.ID)
	req2.CardExpiry = "01/20"
	_, err = service.Proceed(context.Background(), req2)
	var ve *payment.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "card_expiry", ve.Field)
}

func TestCalculateCommission(t *testing.T) {
	service, _ := newService(t)

	cases := []struct {
		brand      string
		commission string
		total      string
	}{
		{"VISA", "10", "1010"},
		{"MASTERCARD", "10", "1010"},
		{"MIR", "20", "1020"},
	}
	for _, c := range cases {
		result, err := service.CalculateCommission(c.brand, decimal.NewFromInt(1000))
		require.NoError(t, err)
		require.True(t, result.Commission.Equal(decimal.RequireFromString(c.commission)),
			"%s commission = %s", c.brand, result.Commission)
		require.True(t, result.TotalAmount.Equal(decimal.RequireFromString(c.total)),
			"%s total = %s", c.brand, result.TotalAmount)
	}

	_, err := service.CalculateCommission("AMEX", decimal.NewFromInt(1000))
	var ve *payment.ValidationError
	require.ErrorAs(t, err, &ve)
}
