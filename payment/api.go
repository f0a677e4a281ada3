package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/partnerpay/paymentpage/payment/models"
)

// API is the HTTP surface of the payment service.
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{
		service: service,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/partners", a.createPartner)
		r.Get("/partners/{partnerID}", a.getPartner)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", a.createOrder)
			r.Post("/proceed", a.proceedOrder)
			r.Post("/calculate-commission", a.calculateCommission)
			r.Get("/{orderID}", a.getOrder)
			r.Get("/{orderID}/transactions", a.getTransactions)
		})

		r.Get("/cards", a.availableCards)
	})
}

// errorBody is the JSON error envelope. Validation failures carry the
// verdict so the form can highlight the failing field.
type errorBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Code   string `json:"code,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  "validation failed",
			Field:  ve.Field,
			Code:   ve.Verdict.Code,
			Detail: ve.Verdict.Detail,
		})
		return
	}
	if errors.Is(err, ErrNotFound) {
		// A paid order and a missing order look the same on purpose.
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (a *API) createPartner(w http.ResponseWriter, r *http.Request) {
	create := models.CreatePartner{}
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	partner, err := a.service.CreatePartner(create)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

func (a *API) getPartner(w http.ResponseWriter, r *http.Request) {
	partner, err := a.service.GetPartner(chi.URLParam(r, "partnerID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	create := models.CreateOrder{}
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := a.service.CreateOrder(create)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.service.GetOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (a *API) proceedOrder(w http.ResponseWriter, r *http.Request) {
	proceed := models.ProceedOrder{}
	if err := json.NewDecoder(r.Body).Decode(&proceed); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := a.service.Proceed(r.Context(), proceed)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) calculateCommission(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CardBrand string          `json:"card_brand"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !body.Amount.IsPositive() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Field: "amount", Code: "invalid"})
		return
	}
	result, err := a.service.CalculateCommission(body.CardBrand, body.Amount)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) getTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := a.service.ListTransactions(chi.URLParam(r, "orderID"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// availableCards exposes the brand catalog for the payment form: names,
// accepted lengths and CVV lengths. Patterns stay server-side.
func (a *API) availableCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Catalog().Brands())
}
