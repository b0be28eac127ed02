package chapa

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// VirtualAccountOptions is the input for CreateVirtualAccount.
type VirtualAccountOptions struct {
	Email       string   `json:"email" validate:"required,email"`
	FirstName   string   `json:"first_name" validate:"required"`
	LastName    string   `json:"last_name" validate:"required"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Currency    Currency `json:"currency,omitempty"`
}

// VirtualAccount is a dedicated account number a customer can pay into.
type VirtualAccount struct {
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Currency      Currency        `json:"currency"`
	Status        string          `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// VirtualAccountPage is one page of the virtual account listing.
type VirtualAccountPage struct {
	Accounts []VirtualAccount
	Meta     *ListMeta
}

// VirtualAccountMovementOptions is the input for CreditVirtualAccount and
// DebitVirtualAccount.
type VirtualAccountMovementOptions struct {
	AccountNumber string   `json:"account_number" validate:"required"`
	Amount        string   `json:"amount" validate:"required,amount"`
	Currency      Currency `json:"currency,omitempty"`
	Reference     string   `json:"reference,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// VirtualAccountMovement is one credit or debit on a virtual account.
type VirtualAccountMovement struct {
	RefID         string          `json:"ref_id"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// VirtualAccountMovementPage is one page of a virtual account's history.
type VirtualAccountMovementPage struct {
	Movements []VirtualAccountMovement
	Meta      *ListMeta
}

// CreateVirtualAccount opens a virtual account tied to a customer.
func (c *Client) CreateVirtualAccount(ctx context.Context, opts *VirtualAccountOptions) (*VirtualAccount, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, "/virtual-account/create", opts)
	if err != nil {
		return nil, wrapOp("create virtual account", err)
	}
	account, err := decodeResponse[VirtualAccount](status, body)
	if err != nil {
		return nil, wrapOp("create virtual account", err)
	}
	return &account, nil
}

// GetVirtualAccount fetches one virtual account by its account number.
func (c *Client) GetVirtualAccount(ctx context.Context, accountNumber string) (*VirtualAccount, error) {
	if err := requirePathParam("account_number", accountNumber); err != nil {
		return nil, err
	}
	status, body, err := c.doGet(ctx, "/virtual-account/"+accountNumber)
	if err != nil {
		return nil, wrapOp("get virtual account", err)
	}
	account, err := decodeResponse[VirtualAccount](status, body)
	if err != nil {
		return nil, wrapOp("get virtual account", err)
	}
	return &account, nil
}

// GetVirtualAccounts lists the virtual accounts on the account.
func (c *Client) GetVirtualAccounts(ctx context.Context) (*VirtualAccountPage, error) {
	accounts, meta, err := listWithMeta[VirtualAccount](ctx, c, "/virtual-accounts", "get virtual accounts")
	if err != nil {
		return nil, err
	}
	return &VirtualAccountPage{Accounts: accounts, Meta: meta}, nil
}

// CreditVirtualAccount adds funds to a virtual account.
func (c *Client) CreditVirtualAccount(ctx context.Context, opts *VirtualAccountMovementOptions) (*VirtualAccountMovement, error) {
	return c.moveVirtualAccount(ctx, "/virtual-account/credit", "credit virtual account", opts)
}

// DebitVirtualAccount removes funds from a virtual account.
func (c *Client) DebitVirtualAccount(ctx context.Context, opts *VirtualAccountMovementOptions) (*VirtualAccountMovement, error) {
	return c.moveVirtualAccount(ctx, "/virtual-account/debit", "debit virtual account", opts)
}

// GetVirtualAccountTransactions lists the movements of a virtual account.
func (c *Client) GetVirtualAccountTransactions(ctx context.Context, accountNumber string) (*VirtualAccountMovementPage, error) {
	if err := requirePathParam("account_number", accountNumber); err != nil {
		return nil, err
	}
	movements, meta, err := listWithMeta[VirtualAccountMovement](ctx, c, "/virtual-account/transactions/"+accountNumber, "get virtual account transactions")
	if err != nil {
		return nil, err
	}
	return &VirtualAccountMovementPage{Movements: movements, Meta: meta}, nil
}

func (c *Client) moveVirtualAccount(ctx context.Context, path, op string, opts *VirtualAccountMovementOptions) (*VirtualAccountMovement, error) {
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	status, body, err := c.doJSON(ctx, http.MethodPost, path, opts)
	if err != nil {
		return nil, wrapOp(op, err)
	}
	movement, err := decodeResponse[VirtualAccountMovement](status, body)
	if err != nil {
		return nil, wrapOp(op, err)
	}
	return &movement, nil
}
