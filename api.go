package chapa

import "context"

// API is the full operation surface of the client. Accepting this
// interface instead of *Client keeps application code mockable.
type API interface {
	// InitializeTransaction creates a hosted checkout session.
	InitializeTransaction(ctx context.Context, opts *InitializeOptions) (*Checkout, error)
	// VerifyTransaction fetches the settled state of a transaction.
	VerifyTransaction(ctx context.Context, txRef string) (*TransactionVerification, error)
	// GetTransactions lists transactions on the account.
	GetTransactions(ctx context.Context) (*TransactionPage, error)
	// GetTransactionEvents lists the processing timeline of a transaction.
	GetTransactionEvents(ctx context.Context, refID string) ([]TransactionEvent, error)

	// InitiateTransfer queues a payout and returns its reference.
	InitiateTransfer(ctx context.Context, opts *TransferOptions) (string, error)
	// VerifyTransfer fetches the settled state of a transfer.
	VerifyTransfer(ctx context.Context, txRef string) (*TransferVerification, error)
	// GetTransfers lists transfers on the account.
	GetTransfers(ctx context.Context) (*TransferPage, error)
	// InitiateBulkTransfer queues a batch of payouts.
	InitiateBulkTransfer(ctx context.Context, opts *BulkTransferOptions) (*BulkTransferData, error)
	// VerifyBulkTransfer lists the transfers created from a batch.
	VerifyBulkTransfer(ctx context.Context, batchID int) (*TransferPage, error)

	// GetBanks lists the banks transfers can be sent to.
	GetBanks(ctx context.Context) ([]Bank, error)
	// GetBalances reports the account balance in every currency.
	GetBalances(ctx context.Context) ([]Balance, error)
	// GetBalance reports the account balance in one currency.
	GetBalance(ctx context.Context, currency Currency) (*Balance, error)
	// SwapCurrencies converts balance between two currencies.
	SwapCurrencies(ctx context.Context, opts *SwapOptions) (*Swap, error)

	// InitiateDirectCharge starts a charge against a mobile wallet.
	InitiateDirectCharge(ctx context.Context, chargeType ChargeType, opts *DirectChargeOptions) (*DirectCharge, error)
	// AuthorizeDirectCharge completes a pending direct charge.
	AuthorizeDirectCharge(ctx context.Context, chargeType ChargeType, opts *AuthorizeOptions) (*ChargeAuthorization, error)

	// CreateSubaccount registers a settlement split recipient.
	CreateSubaccount(ctx context.Context, opts *SubaccountOptions) (*Subaccount, error)

	// RefundTransaction refunds a settled transaction.
	RefundTransaction(ctx context.Context, txRef string, opts *RefundOptions) (*Refund, error)

	// CreateVirtualAccount opens a virtual account for a customer.
	CreateVirtualAccount(ctx context.Context, opts *VirtualAccountOptions) (*VirtualAccount, error)
	// GetVirtualAccount fetches one virtual account by number.
	GetVirtualAccount(ctx context.Context, accountNumber string) (*VirtualAccount, error)
	// GetVirtualAccounts lists virtual accounts on the account.
	GetVirtualAccounts(ctx context.Context) (*VirtualAccountPage, error)
	// CreditVirtualAccount adds funds to a virtual account.
	CreditVirtualAccount(ctx context.Context, opts *VirtualAccountMovementOptions) (*VirtualAccountMovement, error)
	// DebitVirtualAccount removes funds from a virtual account.
	DebitVirtualAccount(ctx context.Context, opts *VirtualAccountMovementOptions) (*VirtualAccountMovement, error)
	// GetVirtualAccountTransactions lists the movements of a virtual account.
	GetVirtualAccountTransactions(ctx context.Context, accountNumber string) (*VirtualAccountMovementPage, error)
}
