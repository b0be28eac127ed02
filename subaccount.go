package chapa

import (
	"context"
	"errors"
	"net/http"
)

// SplitType says how a subaccount's share of a payment is computed.
type SplitType string

// Split rules accepted by the subaccount endpoint.
const (
	// SplitPercentage takes a fraction of each payment, e.g. 0.03.
	SplitPercentage SplitType = "percentage"
	// SplitFlat takes a fixed amount from each payment.
	SplitFlat SplitType = "flat"
)

// SubaccountOptions is the input for CreateSubaccount.
type SubaccountOptions struct {
	BusinessName  string    `json:"business_name" validate:"required"`
	AccountName   string    `json:"account_name" validate:"required"`
	BankCode      int       `json:"bank_code" validate:"required"`
	AccountNumber string    `json:"account_number" validate:"required"`
	SplitValue    float64   `json:"split_value" validate:"required,gt=0"`
	SplitType     SplitType `json:"split_type" validate:"required,oneof=percentage flat"`
}

// Subaccount identifies a created settlement split recipient. The API
// returns the new ID under the literal key "subaccounts[id]".
type Subaccount struct {
	ID string `json:"subaccounts[id]"`
}

var errNoSubaccountID = errors.New("data has no subaccounts[id]")

// CreateSubaccount registers a bank account that receives a split of
// incoming payments. The returned ID is what checkout requests reference.
func (c *Client) CreateSubaccount(ctx context.Context, opts *SubaccountOptions) (*Subaccount, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/subaccount", opts)
	if err != nil {
		return nil, wrapOp("create subaccount", err)
	}
	subaccount, err := decodeResponse[Subaccount](status, body)
	if err != nil {
		return nil, wrapOp("create subaccount", err)
	}
	if subaccount.ID == "" {
		return nil, wrapOp("create subaccount", &DecodeError{StatusCode: status, RawBody: body, Err: errNoSubaccountID})
	}
	return &subaccount, nil
}
