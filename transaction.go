package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// InitializeOptions is the input for InitializeTransaction.
type InitializeOptions struct {
	Amount        string            `json:"amount" url:"amount" validate:"required,amount"`
	Currency      Currency          `json:"currency" url:"currency" validate:"required"`
	TxRef         string            `json:"tx_ref" url:"tx_ref" validate:"required"`
	Email         string            `json:"email,omitempty" url:"email,omitempty" validate:"omitempty,email"`
	FirstName     string            `json:"first_name,omitempty" url:"first_name,omitempty"`
	LastName      string            `json:"last_name,omitempty" url:"last_name,omitempty"`
	PhoneNumber   string            `json:"phone_number,omitempty" url:"phone_number,omitempty"`
	CallbackURL   string            `json:"callback_url,omitempty" url:"callback_url,omitempty" validate:"omitempty,url"`
	ReturnURL     string            `json:"return_url,omitempty" url:"return_url,omitempty" validate:"omitempty,url"`
	Customization *Customization    `json:"customization,omitempty" url:"customization,omitempty"`
	Meta          map[string]string `json:"meta,omitempty" url:"-"`
}

// Checkout is the hosted payment page created for a transaction.
type Checkout struct {
	CheckoutURL string `json:"checkout_url"`
}

// TransactionVerification is the settled state of a transaction as
// reported by the verify endpoint.
type TransactionVerification struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phone_number"`
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Charge        decimal.Decimal `json:"charge"`
	Mode          string          `json:"mode"`
	Method        string          `json:"method"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference"`
	TxRef         string          `json:"tx_ref"`
	Customization *Customization  `json:"customization"`
	Meta          json.RawMessage `json:"meta"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Transaction is one row of the transaction listing.
type Transaction struct {
	Status        string          `json:"status"`
	RefID         string          `json:"ref_id"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"created_at"`
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Charge        decimal.Decimal `json:"charge"`
	TransID       string          `json:"trans_id"`
	PaymentMethod string          `json:"payment_method"`
	Customer      *Customer       `json:"customer"`
}

// TransactionPage is one page of the transaction listing.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   *Pagination   `json:"pagination"`
}

// TransactionEvent is one entry in a transaction's processing timeline.
type TransactionEvent struct {
	Item      int       `json:"item"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var errNoCheckoutURL = errors.New("data has no checkout_url")

// InitializeTransaction creates a hosted checkout session and returns the
// URL the customer should be redirected to. The amount always travels as
// a string, exactly as given.
func (c *Client) InitializeTransaction(ctx context.Context, opts *InitializeOptions) (*Checkout, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	form, err := encodeForm(opts)
	if err != nil {
		return nil, err
	}
	for key, value := range opts.Meta {
		form.Set("meta["+key+"]", value)
	}
	status, body, err := c.doForm(ctx, http.MethodPost, "/transaction/initialize", form)
	if err != nil {
		return nil, wrapOp("initialize transaction", err)
	}
	checkout, err := decodeResponse[Checkout](status, body)
	if err != nil {
		return nil, wrapOp("initialize transaction", err)
	}
	if checkout.CheckoutURL == "" {
		return nil, wrapOp("initialize transaction", &DecodeError{StatusCode: status, RawBody: body, Err: errNoCheckoutURL})
	}
	return &checkout, nil
}

// VerifyTransaction fetches the settled state of the transaction created
// under txRef. Call it after the customer returns from checkout, or on a
// webhook, before delivering anything of value.
func (c *Client) VerifyTransaction(ctx context.Context, txRef string) (*TransactionVerification, error) {
	if err := requirePathParam("tx_ref", txRef); err != nil {
		return nil, err
	}
	status, body, err := c.doGet(ctx, "/transaction/verify/"+txRef)
	if err != nil {
		return nil, wrapOp("verify transaction", err)
	}
	verification, err := decodeResponse[TransactionVerification](status, body)
	if err != nil {
		return nil, wrapOp("verify transaction", err)
	}
	return &verification, nil
}

// GetTransactions lists the transactions on the account.
func (c *Client) GetTransactions(ctx context.Context) (*TransactionPage, error) {
	status, body, err := c.doGet(ctx, "/transactions")
	if err != nil {
		return nil, wrapOp("get transactions", err)
	}
	page, err := decodeResponse[TransactionPage](status, body)
	if err != nil {
		return nil, wrapOp("get transactions", err)
	}
	return &page, nil
}

// GetTransactionEvents lists the processing timeline of the transaction
// identified by refID.
func (c *Client) GetTransactionEvents(ctx context.Context, refID string) ([]TransactionEvent, error) {
	if err := requirePathParam("ref_id", refID); err != nil {
		return nil, err
	}
	status, body, err := c.doGet(ctx, "/transaction/events/"+refID)
	if err != nil {
		return nil, wrapOp("get transaction events", err)
	}
	events, err := decodeResponse[[]TransactionEvent](status, body)
	if err != nil {
		return nil, wrapOp("get transaction events", err)
	}
	return events, nil
}
