package chapa

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// RefundOptions is the input for RefundTransaction. Every field is
// optional; leaving Amount empty refunds the full transaction.
type RefundOptions struct {
	Reason    string            `json:"reason,omitempty" url:"reason,omitempty"`
	Amount    string            `json:"amount,omitempty" url:"amount,omitempty" validate:"omitempty,amount"`
	Reference string            `json:"reference,omitempty" url:"reference,omitempty"`
	Meta      map[string]string `json:"meta,omitempty" url:"-"`
}

// Refund is the state of an accepted refund.
type Refund struct {
	RefID     string          `json:"ref_id"`
	TxRef     string          `json:"tx_ref"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  Currency        `json:"currency"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// RefundTransaction refunds the settled transaction created under txRef.
// Passing nil opts refunds the full amount. The endpoint sometimes
// acknowledges without any refund details, in which case both return
// values are nil.
func (c *Client) RefundTransaction(ctx context.Context, txRef string, opts *RefundOptions) (*Refund, error) {
	if err := requirePathParam("tx_ref", txRef); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &RefundOptions{}
	}
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
	status, body, err := c.doForm(ctx, http.MethodPost, "/refund/"+txRef, form)
	if err != nil {
		return nil, wrapOp("refund transaction", err)
	}
	env, err := decodeEnvelope(status, body)
	if err != nil {
		return nil, wrapOp("refund transaction", err)
	}
	if !present(env.Data) {
		return nil, nil
	}
	refund, err := decodeData[Refund](env, status, body)
	if err != nil {
		return nil, wrapOp("refund transaction", err)
	}
	return &refund, nil
}
