package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// ChargeType selects the wallet or bank a direct charge runs against.
type ChargeType string

// Payment methods accepted by the direct charge endpoints.
const (
	ChargeTelebirr    ChargeType = "telebirr"
	ChargeMpesa       ChargeType = "mpesa"
	ChargeAmole       ChargeType = "amole"
	ChargeCBEBirr     ChargeType = "cbebirr"
	ChargeCoopayEbirr ChargeType = "ebirr"
	ChargeAwashBirr   ChargeType = "awashbirr"
)

// DirectChargeOptions is the input for InitiateDirectCharge.
type DirectChargeOptions struct {
	Amount    string   `json:"amount" url:"amount" validate:"required,amount"`
	Currency  Currency `json:"currency" url:"currency" validate:"required"`
	TxRef     string   `json:"tx_ref" url:"tx_ref" validate:"required"`
	Mobile    string   `json:"mobile" url:"mobile" validate:"required"`
	FirstName string   `json:"first_name,omitempty" url:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty" url:"last_name,omitempty"`
	Email     string   `json:"email,omitempty" url:"email,omitempty" validate:"omitempty,email"`
}

// DirectCharge is the pending state of a charge pushed to a wallet.
type DirectCharge struct {
	AuthType  string           `json:"auth_type"`
	RequestID string           `json:"requestID"`
	Meta      DirectChargeMeta `json:"meta"`
	Mode      string           `json:"mode"`
}

// DirectChargeMeta carries the processor's progress report on a pending
// direct charge.
type DirectChargeMeta struct {
	Message       string `json:"message"`
	Status        string `json:"status"`
	RefID         string `json:"ref_id"`
	PaymentStatus string `json:"payment_status"`
}

// AuthorizeOptions is the input for AuthorizeDirectCharge. Client carries
// the challenge response (OTP or encrypted payload) the wallet asked for.
type AuthorizeOptions struct {
	Reference string `json:"reference" url:"reference" validate:"required"`
	Client    string `json:"client" url:"client" validate:"required"`
}

// ChargeAuthorization is the outcome of authorizing a direct charge.
type ChargeAuthorization struct {
	Message     string `json:"message"`
	TrxRef      string `json:"trx_ref"`
	ProcessorID string `json:"processor_id"`
}

var errBareAuthorization = errors.New("response has neither trx_ref nor message")

// InitiateDirectCharge starts a charge against a customer wallet. The
// customer then approves it on their device, after which the charge is
// completed with AuthorizeDirectCharge.
func (c *Client) InitiateDirectCharge(ctx context.Context, chargeType ChargeType, opts *DirectChargeOptions) (*DirectCharge, error) {
	if err := requirePathParam("type", string(chargeType)); err != nil {
		return nil, err
	}
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	form, err := encodeForm(opts)
	if err != nil {
		return nil, err
	}
	status, body, err := c.doForm(ctx, http.MethodPost, "/charges?type="+url.QueryEscape(string(chargeType)), form)
	if err != nil {
		return nil, wrapOp("initiate direct charge", err)
	}
	charge, err := decodeResponse[DirectCharge](status, body)
	if err != nil {
		return nil, wrapOp("initiate direct charge", err)
	}
	return &charge, nil
}

// AuthorizeDirectCharge completes a pending direct charge. Unlike every
// other endpoint, a successful validate response arrives bare, without
// the envelope, while failures still arrive enveloped. Both shapes are
// handled here.
func (c *Client) AuthorizeDirectCharge(ctx context.Context, chargeType ChargeType, opts *AuthorizeOptions) (*ChargeAuthorization, error) {
	if err := requirePathParam("type", string(chargeType)); err != nil {
		return nil, err
	}
	if err := c.checkOptions(opts); err != nil {
		return nil, err
	}
	form, err := encodeForm(opts)
	if err != nil {
		return nil, err
	}
	status, body, err := c.doForm(ctx, http.MethodPost, "/validate?type="+url.QueryEscape(string(chargeType)), form)
	if err != nil {
		return nil, wrapOp("authorize direct charge", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapOp("authorize direct charge", &DecodeError{StatusCode: status, RawBody: body, Err: err})
	}
	if env.Status != "" && env.Status != statusSuccess {
		return nil, wrapOp("authorize direct charge", ClassifyError(&RemoteError{StatusCode: status, Message: env.Message, RawBody: body}))
	}
	if env.Status == statusSuccess && present(env.Data) {
		auth, err := decodeData[ChargeAuthorization](&env, status, body)
		if err != nil {
			return nil, wrapOp("authorize direct charge", err)
		}
		return &auth, nil
	}

	var auth ChargeAuthorization
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, wrapOp("authorize direct charge", &DecodeError{StatusCode: status, RawBody: body, Err: err})
	}
	if auth.TrxRef == "" && auth.Message == "" {
		return nil, wrapOp("authorize direct charge", &DecodeError{StatusCode: status, RawBody: body, Err: errBareAuthorization})
	}
	return &auth, nil
}
