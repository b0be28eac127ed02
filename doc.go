// Package chapa is a client for the Chapa payment API.
//
// It covers hosted checkout, transaction verification, transfers and bulk
// transfers, direct wallet charges, refunds, subaccount splits, virtual
// accounts, balances and currency swaps, plus webhook handling.
//
// # Authentication
//
// Every request carries the account's secret key as a bearer token. The
// key travels only in the Authorization header, never in a request body,
// and is never written to the log.
//
// # Quick Start
//
//	client, err := chapa.New(os.Getenv("CHAPA_SECRET_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	checkout, err := client.InitializeTransaction(ctx, &chapa.InitializeOptions{
//		Amount:   "100",
//		Currency: chapa.CurrencyETB,
//		TxRef:    chapa.GenerateTxRef(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(checkout.CheckoutURL)
//
// After the customer pays, confirm the outcome before delivering value:
//
//	verification, err := client.VerifyTransaction(ctx, txRef)
//
// # Error Handling
//
// Every operation returns one of four error kinds: *ValidationError for
// input rejected before any network traffic, *TransportError for network
// failures, *DecodeError when a response does not match the documented
// shape, and *RemoteError when the API itself reports failure. Branch
// with errors.As, or use the Is helpers:
//
//	_, err := client.VerifyTransaction(ctx, txRef)
//	if chapa.IsNotFound(err) {
//		// nothing recorded under that reference
//	}
//
// The client never retries. Every call maps to exactly one HTTP request,
// so retry policy stays with the caller.
//
// # Webhooks
//
// WebhookHandler verifies signatures and dispatches event notifications:
//
//	handler := chapa.NewWebhookHandler(os.Getenv("CHAPA_WEBHOOK_SECRET"))
//	handler.OnChargeSuccess = func(ctx context.Context, event *chapa.WebhookEvent) error {
//		return orders.MarkPaid(ctx, event.TxRef)
//	}
//	http.Handle("/webhooks/chapa", handler)
//
// See https://developer.chapa.co for the API reference.
package chapa
