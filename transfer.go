package chapa

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// TransferOptions is the input for InitiateTransfer.
type TransferOptions struct {
	AccountName   string   `json:"account_name,omitempty"`
	AccountNumber string   `json:"account_number" validate:"required"`
	Amount        string   `json:"amount" validate:"required,amount"`
	Currency      Currency `json:"currency,omitempty"`
	Reference     string   `json:"reference,omitempty"`
	BankCode      int      `json:"bank_code" validate:"required"`
}

// TransferVerification is the settled state of a transfer as reported by
// the verify endpoint.
type TransferVerification struct {
	AccountName         string          `json:"account_name"`
	AccountNumber       string          `json:"account_number"`
	Mobile              string          `json:"mobile"`
	Currency            Currency        `json:"currency"`
	Amount              decimal.Decimal `json:"amount"`
	Charge              decimal.Decimal `json:"charge"`
	Mode                string          `json:"mode"`
	TransferMethod      string          `json:"transfer_method"`
	Narration           string          `json:"narration"`
	ChapaTransferID     string          `json:"chapa_transfer_id"`
	BankCode            int             `json:"bank_code"`
	BankName            string          `json:"bank_name"`
	CrossPartyReference string          `json:"cross_party_reference"`
	IPAddress           string          `json:"ip_address"`
	Status              string          `json:"status"`
	TxRef               string          `json:"tx_ref"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Transfer is one row of the transfer listing.
type Transfer struct {
	AccountName    string          `json:"account_name"`
	AccountNumber  string          `json:"account_number"`
	Currency       Currency        `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	Charge         decimal.Decimal `json:"charge"`
	TransferType   string          `json:"transfer_type"`
	ChapaReference string          `json:"chapa_reference"`
	BankCode       int             `json:"bank_code"`
	BankName       string          `json:"bank_name"`
	BankReference  string          `json:"bank_reference"`
	Status         string          `json:"status"`
	IsReversed     bool            `json:"is_reversed"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransferPage is one page of the transfer listing. Meta is nil when the
// response carries no paging information.
type TransferPage struct {
	Transfers []Transfer
	Meta      *ListMeta
}

// BulkEntry is a single payout inside a bulk transfer.
type BulkEntry struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number" validate:"required"`
	Amount        string `json:"amount" validate:"required,amount"`
	Reference     string `json:"reference,omitempty"`
	BankCode      int    `json:"bank_code" validate:"required"`
}

// BulkTransferOptions is the input for InitiateBulkTransfer.
type BulkTransferOptions struct {
	Title    string      `json:"title" validate:"required"`
	Currency Currency    `json:"currency" validate:"required"`
	BulkData []BulkEntry `json:"bulk_data" validate:"required,min=1,dive"`
}

// BulkTransferData identifies a queued bulk transfer batch. The ID is
// what VerifyBulkTransfer takes.
type BulkTransferData struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// InitiateTransfer queues a payout to a bank account and returns the
// transfer reference to verify it with later. Queued means accepted, not
// settled.
func (c *Client) InitiateTransfer(ctx context.Context, opts *TransferOptions) (string, error) {
	if err := c.checkOptions(opts); err != nil {
		return "", err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/transfers", opts)
	if err != nil {
		return "", wrapOp("initiate transfer", err)
	}
	reference, err := decodeResponse[string](status, body)
	if err != nil {
		return "", wrapOp("initiate transfer", err)
	}
	return reference, nil
}

// VerifyTransfer fetches the settled state of the transfer created under
// txRef.
func (c *Client) VerifyTransfer(ctx context.Context, txRef string) (*TransferVerification, error) {
	if err := requirePathParam("tx_ref", txRef); err != nil {
		return nil, err
	}
	status, body, err := c.doGet(ctx, "/transfers/verify/"+txRef)
	if err != nil {
		return nil, wrapOp("verify transfer", err)
	}
	verification, err := decodeResponse[TransferVerification](status, body)
	if err != nil {
		return nil, wrapOp("verify transfer", err)
	}
	return &verification, nil
}

// GetTransfers lists the transfers on the account.
func (c *Client) GetTransfers(ctx context.Context) (*TransferPage, error) {
	return c.listTransfers(ctx, "/transfers", "get transfers")
}

// InitiateBulkTransfer queues a batch of payouts in one request.
func (c *Client) InitiateBulkTransfer(ctx context.Context, opts *BulkTransferOptions) (*BulkTransferData, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/bulk-transfers", opts)
	if err != nil {
		return nil, wrapOp("initiate bulk transfer", err)
	}
	data, err := decodeResponse[BulkTransferData](status, body)
	if err != nil {
		return nil, wrapOp("initiate bulk transfer", err)
	}
	return &data, nil
}

// VerifyBulkTransfer lists the transfers created from a bulk batch.
func (c *Client) VerifyBulkTransfer(ctx context.Context, batchID int) (*TransferPage, error) {
	if batchID <= 0 {
		return nil, NewValidationError("batch_id", "must be greater than 0")
	}
	return c.listTransfers(ctx, fmt.Sprintf("/transfers?batch_id=%d", batchID), "verify bulk transfer")
}

func (c *Client) listTransfers(ctx context.Context, path, op string) (*TransferPage, error) {
	transfers, meta, err := listWithMeta[Transfer](ctx, c, path, op)
	if err != nil {
		return nil, err
	}
	return &TransferPage{Transfers: transfers, Meta: meta}, nil
}
