package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/partnerpay/paymentpage/payment/models"
)

var (
	// ErrNotFound covers both a missing order and one that already left the
	// CREATED state: callers must not be able to tell them apart.
	ErrNotFound = fmt.Errorf("not found")
	ErrConflict = fmt.Errorf("conflict")
)

// Repository stores partners, orders and transactions. With a nil db it
// keeps everything in memory behind a mutex (tests); with a db it runs
// against Postgres.
type Repository struct {
	Partners     []*models.Partner
	Orders       []*models.Order
	Transactions []*models.Transaction

	mu sync.RWMutex
	db *sql.DB
}

func NewRepository() *Repository {
	return &Repository{
		Partners:     make([]*models.Partner, 0),
		Orders:       make([]*models.Order, 0),
		Transactions: make([]*models.Transaction, 0),
	}
}

// NewPGRepository constructs a db-backed repository.
func NewPGRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePartner(partner *models.Partner) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.Partners = append(r.Partners, partner)
		return nil
	}
	_, err := r.db.ExecContext(context.Background(), `
        INSERT INTO partners(partner_id, name, color_scheme, success_redirect_uri)
        VALUES ($1,$2,$3,$4)
    `, partner.ID, partner.Name, partner.ColorScheme, partner.SuccessRedirectURI)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *Repository) GetPartner(partnerID string) (*models.Partner, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, p := range r.Partners {
			if p.ID == partnerID {
				return p, nil
			}
		}
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(context.Background(), `
        SELECT partner_id, name, color_scheme, success_redirect_uri FROM partners WHERE partner_id=$1
    `, partnerID)
	var p models.Partner
	if err := row.Scan(&p.ID, &p.Name, &p.ColorScheme, &p.SuccessRedirectURI); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateOrder(order *models.Order) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.Orders = append(r.Orders, order)
		return nil
	}
	_, err := r.db.ExecContext(context.Background(), `
        INSERT INTO orders(order_id, partner_id, amount, currency, description, need_commission, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, order.ID, order.PartnerID, order.Amount, order.Currency, order.Description,
		order.NeedCommission, string(order.Status), order.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *Repository) GetOrder(orderID string) (*models.Order, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, o := range r.Orders {
			if o.ID == orderID {
				cp := *o
				return &cp, nil
			}
		}
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(context.Background(), `
        SELECT order_id, partner_id, amount, currency, description, need_commission, status, created_at
          FROM orders WHERE order_id=$1
    `, orderID)
	var o models.Order
	var status string
	if err := row.Scan(&o.ID, &o.PartnerID, &o.Amount, &o.Currency, &o.Description,
		&o.NeedCommission, &status, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	return &o, nil
}

// ProceedOrder performs the atomic CREATED→PAID transition and records the
// settling transaction. Only a caller that observes the order in CREATED
// wins; everyone else gets ErrNotFound, so an order can never be charged
// twice and a PAID order always has exactly one transaction.
func (r *Repository) ProceedOrder(ctx context.Context, orderID string, transaction *models.Transaction) (*models.Order, error) {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, o := range r.Orders {
			if o.ID == orderID {
				if o.Status != models.OrderStatusCreated {
					return nil, ErrNotFound
				}
				o.Status = models.OrderStatusPaid
				r.Transactions = append(r.Transactions, transaction)
				cp := *o
				return &cp, nil
			}
		}
		return nil, ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `set local statement_timeout = '3s'`); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
        UPDATE orders SET status='PAID' WHERE order_id=$1 AND status='CREATED'
    `, orderID)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO transactions(tx_id, order_id, card_brand, card_last4, status, amount, commission, total_amount, currency, processed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, transaction.ID, transaction.OrderID, transaction.CardBrand, transaction.CardLast4,
		string(transaction.Status), transaction.Amount, transaction.Commission,
		transaction.TotalAmount, transaction.Currency, transaction.ProcessedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	var o models.Order
	var status string
	if err := tx.QueryRowContext(ctx, `
        SELECT order_id, partner_id, amount, currency, description, need_commission, status, created_at
          FROM orders WHERE order_id=$1
    `, orderID).Scan(&o.ID, &o.PartnerID, &o.Amount, &o.Currency, &o.Description,
		&o.NeedCommission, &status, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListTransactions returns all transactions for an order.
func (r *Repository) ListTransactions(orderID string) ([]*models.Transaction, error) {
	if r.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		var out []*models.Transaction
		for _, t := range r.Transactions {
			if t.OrderID == orderID {
				out = append(out, t)
			}
		}
		return out, nil
	}
	rows, err := r.db.QueryContext(context.Background(), `
        SELECT tx_id, order_id, card_brand, card_last4, status, amount, commission, total_amount, currency, processed_at
          FROM transactions WHERE order_id=$1 ORDER BY processed_at DESC
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		var status string
		if err := rows.Scan(&t.ID, &t.OrderID, &t.CardBrand, &t.CardLast4, &status,
			&t.Amount, &t.Commission, &t.TotalAmount, &t.Currency, &t.ProcessedAt); err != nil {
			return nil, err
		}
		t.Status = models.TransactionStatus(status)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Ping reports DB readiness.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
