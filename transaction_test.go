package chapa

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureForm(t *testing.T, req *http.Request) url.Values {
	t.Helper()
	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(raw))
	require.NoError(t, err)
	return form
}

func formKeys(form url.Values) []string {
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestInitializeTransaction(t *testing.T) {
	var captured *http.Request
	var form url.Values
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		form = captureForm(t, req)
		return jsonResponse(http.StatusOK, `{
			"message": "Hosted Link",
			"status": "success",
			"data": {"checkout_url": "https://checkout.chapa.co/checkout/payment/abc123"}
		}`), nil
	}))

	checkout, err := client.InitializeTransaction(context.Background(), &InitializeOptions{
		Amount:        "100",
		Currency:      CurrencyETB,
		TxRef:         "tx-mail-order-001",
		Email:         "abebe@example.com",
		FirstName:     "Abebe",
		LastName:      "Bikila",
		Customization: &Customization{Title: "Mail Order"},
		Meta:          map[string]string{"order_id": "771"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.chapa.co/checkout/payment/abc123", checkout.CheckoutURL)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/v1/transaction/initialize", captured.URL.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))

	assert.Equal(t, []string{
		"amount",
		"currency",
		"customization[title]",
		"email",
		"first_name",
		"last_name",
		"meta[order_id]",
		"tx_ref",
	}, formKeys(form))
	assert.Equal(t, "100", form.Get("amount"))
	assert.Equal(t, "ETB", form.Get("currency"))
	assert.Equal(t, "tx-mail-order-001", form.Get("tx_ref"))
	assert.Equal(t, "Mail Order", form.Get("customization[title]"))
	assert.Equal(t, "771", form.Get("meta[order_id]"))
}

// The form must contain exactly the populated fields, for every subset of
// the optional ones.
func TestInitializeTransactionFieldSubsets(t *testing.T) {
	type optional struct {
		key      string
		populate func(*InitializeOptions)
	}
	optionals := []optional{
		{key: "email", populate: func(o *InitializeOptions) { o.Email = "abebe@example.com" }},
		{key: "first_name", populate: func(o *InitializeOptions) { o.FirstName = "Abebe" }},
		{key: "callback_url", populate: func(o *InitializeOptions) { o.CallbackURL = "https://example.com/hooks" }},
		{key: "customization[title]", populate: func(o *InitializeOptions) { o.Customization = &Customization{Title: "Shop"} }},
		{key: "meta[order_id]", populate: func(o *InitializeOptions) { o.Meta = map[string]string{"order_id": "9"} }},
	}

	for mask := 0; mask < 1<<len(optionals); mask++ {
		var form url.Values
		client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
			form = captureForm(t, req)
			return jsonResponse(http.StatusOK, `{
				"message": "Hosted Link",
				"status": "success",
				"data": {"checkout_url": "https://checkout.chapa.co/checkout/payment/abc123"}
			}`), nil
		}))

		opts := &InitializeOptions{Amount: "50.25", Currency: CurrencyETB, TxRef: GenerateTxRef()}
		want := []string{"amount", "currency", "tx_ref"}
		for bit, opt := range optionals {
			if mask&(1<<bit) != 0 {
				opt.populate(opts)
				want = append(want, opt.key)
			}
		}
		sort.Strings(want)

		_, err := client.InitializeTransaction(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, want, formKeys(form), "subset mask %b", mask)
	}
}

func TestInitializeTransactionValidation(t *testing.T) {
	tests := []struct {
		name      string
		opts      *InitializeOptions
		wantField string
	}{
		{
			name:      "missing amount",
			opts:      &InitializeOptions{Currency: CurrencyETB, TxRef: "tx-1"},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			opts:      &InitializeOptions{Amount: "-5", Currency: CurrencyETB, TxRef: "tx-1"},
			wantField: "amount",
		},
		{
			name:      "unparseable amount",
			opts:      &InitializeOptions{Amount: "12.3.4", Currency: CurrencyETB, TxRef: "tx-1"},
			wantField: "amount",
		},
		{
			name:      "missing currency",
			opts:      &InitializeOptions{Amount: "100", TxRef: "tx-1"},
			wantField: "currency",
		},
		{
			name:      "missing tx_ref",
			opts:      &InitializeOptions{Amount: "100", Currency: CurrencyETB},
			wantField: "tx_ref",
		},
		{
			name:      "bad email",
			opts:      &InitializeOptions{Amount: "100", Currency: CurrencyETB, TxRef: "tx-1", Email: "not-an-email"},
			wantField: "email",
		},
		{
			name:      "bad callback url",
			opts:      &InitializeOptions{Amount: "100", Currency: CurrencyETB, TxRef: "tx-1", CallbackURL: "not a url"},
			wantField: "callback_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, noCallDoer(t))

			_, err := client.InitializeTransaction(context.Background(), tt.opts)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestInitializeTransactionMissingCheckoutURL(t *testing.T) {
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"message": "Hosted Link", "status": "success", "data": {}}`), nil
	}))

	_, err := client.InitializeTransaction(context.Background(), &InitializeOptions{
		Amount:   "100",
		Currency: CurrencyETB,
		TxRef:    "tx-1",
	})
	require.Error(t, err)
	assert.True(t, IsDecode(err))
}

func TestVerifyTransaction(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{
			"message": "Payment details",
			"status": "success",
			"data": {
				"first_name": "Abebe",
				"last_name": "Bikila",
				"email": "abebe@example.com",
				"currency": "ETB",
				"amount": 100,
				"charge": "3.5",
				"mode": "test",
				"method": "test",
				"type": "API",
				"status": "success",
				"reference": "6jnheVKQEmy",
				"tx_ref": "mail_order_injera",
				"customization": {"title": "Mail Order", "description": "Lunch"},
				"created_at": "2023-02-02T07:05:23.000000Z",
				"updated_at": "2023-02-02T07:05:23.000000Z"
			}
		}`), nil
	}))

	verification, err := client.VerifyTransaction(context.Background(), "mail_order_injera")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/v1/transaction/verify/mail_order_injera", captured.URL.Path)

	assert.Equal(t, "mail_order_injera", verification.TxRef)
	assert.Equal(t, "success", verification.Status)
	assert.True(t, verification.Amount.Equal(decimal.NewFromInt(100)), "amount = %s", verification.Amount)
	assert.True(t, verification.Charge.Equal(decimal.RequireFromString("3.5")), "charge = %s", verification.Charge)
	require.NotNil(t, verification.Customization)
	assert.Equal(t, "Mail Order", verification.Customization.Title)
	assert.Equal(t, 2023, verification.CreatedAt.Year())
}

func TestVerifyTransactionEmptyRef(t *testing.T) {
	client := newTestClient(t, noCallDoer(t))

	for _, ref := range []string{"", "   "} {
		_, err := client.VerifyTransaction(context.Background(), ref)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestGetTransactions(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{
			"message": "Transactions fetched successfully",
			"status": "success",
			"data": {
				"transactions": [
					{
						"status": "success",
						"ref_id": "iZCnlaziOpCn2",
						"type": "API",
						"created_at": "2023-02-02T07:05:23.000000Z",
						"currency": "ETB",
						"amount": "100.00",
						"charge": "3.50",
						"trans_id": "LqsBZLAFTWnYLoSxFB3rnnM6",
						"payment_method": "test",
						"customer": {
							"id": 85622,
							"email": "abebe@example.com",
							"first_name": "Abebe",
							"last_name": "Bikila",
							"mobile": "0911223344"
						}
					}
				],
				"pagination": {
					"per_page": 10,
					"current_page": 1,
					"first_page_url": "https://api.chapa.co/v1/transactions?page=1",
					"next_page_url": "",
					"prev_page_url": ""
				}
			}
		}`), nil
	}))

	page, err := client.GetTransactions(context.Background())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "/v1/transactions", captured.URL.Path)

	require.Len(t, page.Transactions, 1)
	tx := page.Transactions[0]
	assert.Equal(t, "iZCnlaziOpCn2", tx.RefID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)), "amount = %s", tx.Amount)
	require.NotNil(t, tx.Customer)
	assert.Equal(t, 85622, tx.Customer.ID)

	require.NotNil(t, page.Pagination)
	assert.Equal(t, 10, page.Pagination.PerPage)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
}

func TestGetTransactionEvents(t *testing.T) {
	var captured *http.Request
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{
			"message": "Transaction events fetched",
			"status": "success",
			"data": [
				{"item": 1, "message": "Transaction created", "type": "info", "created_at": "2023-02-02T07:05:23.000000Z", "updated_at": "2023-02-02T07:05:23.000000Z"},
				{"item": 2, "message": "Transaction completed", "type": "success", "created_at": "2023-02-02T07:06:01.000000Z", "updated_at": "2023-02-02T07:06:01.000000Z"}
			]
		}`), nil
	}))

	events, err := client.GetTransactionEvents(context.Background(), "iZCnlaziOpCn2")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "/v1/transaction/events/iZCnlaziOpCn2", captured.URL.Path)

	require.Len(t, events, 2)
	assert.Equal(t, "Transaction created", events[0].Message)
	assert.Equal(t, 2, events[1].Item)
}
