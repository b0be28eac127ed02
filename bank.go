package chapa

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Bank is one entry of the bank list transfers can be sent to.
type Bank struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Swift         string    `json:"swift"`
	Name          string    `json:"name"`
	AcctLength    int       `json:"acct_length"`
	CountryID     int       `json:"country_id"`
	IsMobileMoney int       `json:"is_mobilemoney"`
	IsActive      int       `json:"is_active"`
	IsRTGS        int       `json:"is_rtgs"`
	Active        int       `json:"active"`
	Is24Hrs       int       `json:"is_24hrs"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Currency      Currency  `json:"currency"`
}

// Balance is the account balance in one currency.
type Balance struct {
	Currency         Currency        `json:"currency"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LedgerBalance    decimal.Decimal `json:"ledger_balance"`
}

// SwapOptions is the input for SwapCurrencies.
type SwapOptions struct {
	Amount string   `json:"amount" validate:"required,amount"`
	From   Currency `json:"from" validate:"required"`
	To     Currency `json:"to" validate:"required"`
}

// Swap is the result of a currency conversion.
type Swap struct {
	Status          string          `json:"status"`
	RefID           string          `json:"ref_id"`
	FromCurrency    Currency        `json:"from_currency"`
	ToCurrency      Currency        `json:"to_currency"`
	Amount          decimal.Decimal `json:"amount"`
	ExchangedAmount decimal.Decimal `json:"exchanged_amount"`
	Charge          decimal.Decimal `json:"charge"`
	Rate            decimal.Decimal `json:"rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

var errNoBalance = errors.New("no balance entry for currency")

// GetBanks lists the banks transfers can be sent to.
func (c *Client) GetBanks(ctx context.Context) ([]Bank, error) {
	status, body, err := c.doGet(ctx, "/banks")
	if err != nil {
		return nil, wrapOp("get banks", err)
	}
	banks, err := decodeResponse[[]Bank](status, body)
	if err != nil {
		return nil, wrapOp("get banks", err)
	}
	return banks, nil
}

// GetBalances reports the account balance in every held currency.
func (c *Client) GetBalances(ctx context.Context) ([]Balance, error) {
	status, body, err := c.doGet(ctx, "/balances")
	if err != nil {
		return nil, wrapOp("get balances", err)
	}
	balances, err := decodeResponse[[]Balance](status, body)
	if err != nil {
		return nil, wrapOp("get balances", err)
	}
	return balances, nil
}

// GetBalance reports the account balance in one currency. The endpoint
// answers with a single-element array, so the first entry is returned.
func (c *Client) GetBalance(ctx context.Context, currency Currency) (*Balance, error) {
	if err := requirePathParam("currency", string(currency)); err != nil {
		return nil, err
	}
	status, body, err := c.doGet(ctx, "/balances/"+string(currency))
	if err != nil {
		return nil, wrapOp("get balance", err)
	}
	balances, err := decodeResponse[[]Balance](status, body)
	if err != nil {
		return nil, wrapOp("get balance", err)
	}
	if len(balances) == 0 {
		return nil, wrapOp("get balance", &DecodeError{StatusCode: status, RawBody: body, Err: errNoBalance})
	}
	return &balances[0], nil
}

// SwapCurrencies converts balance from one currency to another.
func (c *Client) SwapCurrencies(ctx context.Context, opts *SwapOptions) (*Swap, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/swap", opts)
	if err != nil {
		return nil, wrapOp("swap currencies", err)
	}
	swap, err := decodeResponse[Swap](status, body)
	if err != nil {
		return nil, wrapOp("swap currencies", err)
	}
	return &swap, nil
}
