package chapa

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		remote       *RemoteError
		wantSentinel error
	}{
		{
			name:         "not found",
			remote:       &RemoteError{StatusCode: http.StatusNotFound, Message: messageFromString("Transaction not found")},
			wantSentinel: ErrNotFound,
		},
		{
			name:         "unauthorized",
			remote:       &RemoteError{StatusCode: http.StatusUnauthorized, Message: messageFromString("Invalid API Key")},
			wantSentinel: ErrUnauthorized,
		},
		{
			name:         "rate limited",
			remote:       &RemoteError{StatusCode: http.StatusTooManyRequests, Message: messageFromString("Too many requests")},
			wantSentinel: ErrRateLimited,
		},
		{
			name:         "server error",
			remote:       &RemoteError{StatusCode: http.StatusBadGateway, Message: messageFromString("upstream timeout")},
			wantSentinel: ErrServerError,
		},
		{
			name:         "duplicate reference",
			remote:       &RemoteError{StatusCode: http.StatusBadRequest, Message: messageFromString("Transaction reference has been used before")},
			wantSentinel: ErrDuplicateReference,
		},
		{
			name:         "insufficient balance",
			remote:       &RemoteError{StatusCode: http.StatusBadRequest, Message: messageFromString("Insufficient Balance")},
			wantSentinel: ErrInsufficientBalance,
		},
		{
			name:         "plain rejection",
			remote:       &RemoteError{StatusCode: http.StatusBadRequest, Message: messageFromString("Invalid currency")},
			wantSentinel: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.remote)

			if tt.wantSentinel != nil {
				assert.True(t, errors.Is(classified, tt.wantSentinel))
			} else {
				assert.Same(t, tt.remote, classified)
			}

			// The typed error stays reachable regardless of classification.
			var remoteErr *RemoteError
			require.ErrorAs(t, classified, &remoteErr)
			assert.Equal(t, tt.remote.StatusCode, remoteErr.StatusCode)
		})
	}
}

func TestClassifyErrorPassThrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, ClassifyError(plain))
	assert.Nil(t, ClassifyError(nil))
}

func TestErrorKindPredicates(t *testing.T) {
	remote := ClassifyError(&RemoteError{StatusCode: http.StatusNotFound, Message: messageFromString("no such transaction")})
	wrapped := wrapOp("verify transaction", remote)

	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"validation", NewValidationError("amount", "is required"), IsValidation, true},
		{"validation negative", wrapped, IsValidation, false},
		{"transport", &TransportError{Op: "send request", URL: "https://api.chapa.co/v1/banks", Err: errors.New("timeout")}, IsTransport, true},
		{"decode", &DecodeError{StatusCode: 200, RawBody: []byte("<html>")}, IsDecode, true},
		{"remote through wrap", wrapped, IsRemote, true},
		{"not found through wrap", wrapped, IsNotFound, true},
		{"not found on validation", NewValidationError("amount", "is required"), IsNotFound, false},
		{"unauthorized by status", &RemoteError{StatusCode: http.StatusUnauthorized}, IsUnauthorized, true},
		{"rate limited by status", &RemoteError{StatusCode: http.StatusTooManyRequests}, IsRateLimited, true},
		{"server error by status", &RemoteError{StatusCode: http.StatusServiceUnavailable}, IsServerError, true},
		{"duplicate by message", &RemoteError{StatusCode: http.StatusBadRequest, Message: messageFromString("Transaction reference has been used before")}, IsDuplicateReference, true},
		{"duplicate negative", &RemoteError{StatusCode: http.StatusBadRequest, Message: messageFromString("Invalid currency")}, IsDuplicateReference, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("email", "must be a valid email address")
	assert.Equal(t, "chapa: validation failed on field 'email': must be a valid email address", err.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransportError{Op: "send request", URL: "https://api.chapa.co/v1/banks", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "send request")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDecodeErrorMessage(t *testing.T) {
	withStatus := &DecodeError{StatusCode: 502, RawBody: []byte("<html>"), Err: errors.New("invalid character '<'")}
	assert.Contains(t, withStatus.Error(), "502")

	withoutStatus := &DecodeError{RawBody: []byte("{"), Err: errors.New("unexpected end of JSON input")}
	assert.Contains(t, withoutStatus.Error(), "cannot decode payload")
}

func TestRemoteErrorMessage(t *testing.T) {
	withMessage := &RemoteError{StatusCode: 400, Message: messageFromString("Invalid amount")}
	assert.Equal(t, "Invalid amount", withMessage.Error())

	withoutMessage := &RemoteError{StatusCode: 400}
	assert.Equal(t, "chapa: request failed with status 400", withoutMessage.Error())
}

func TestWrapOp(t *testing.T) {
	assert.Nil(t, wrapOp("verify transaction", nil))

	wrapped := wrapOp("verify transaction", ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, fmt.Sprintf("chapa verify transaction: %v", ErrNotFound), wrapped.Error())
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain string", raw: `"Charge initiated"`, want: "Charge initiated"},
		{name: "object", raw: `{"email": ["The email must be a valid email address."]}`, want: `{"email":["The email must be a valid email address."]}`},
		{name: "null", raw: `null`, want: ""},
		{name: "empty", raw: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Message
			if tt.raw != "" {
				require.NoError(t, m.UnmarshalJSON([]byte(tt.raw)))
			}
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMessageFieldErrors(t *testing.T) {
	var m Message
	require.NoError(t, m.UnmarshalJSON([]byte(`{"bulk_data.1.amount": ["The amount field is required."], "bulk_data.1.bank_code": ["The bank code field is required."]}`)))

	fields := m.FieldErrors()
	require.Len(t, fields, 2)
	assert.Equal(t, []string{"The amount field is required."}, fields["bulk_data.1.amount"])

	assert.Nil(t, messageFromString("plain").FieldErrors())
}
