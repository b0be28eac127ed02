package main

import (
	"context"
	"log"
	"time"

	chapa "github.com/magnani/chapa-go"
)

func main() {
	log.Println("🚀 Starting chapa demo")

	cfg, err := chapa.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔐 Using secret key %s", chapa.MaskKey(cfg.SecretKey))

	client, err := chapa.NewClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	banks, err := client.GetBanks(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list banks: %v", err)
	}
	log.Printf("✅ %d banks available for transfers", len(banks))

	txRef := chapa.GenerateTxRef()
	log.Printf("🧾 Initializing transaction %s", txRef)

	checkout, err := client.InitializeTransaction(ctx, &chapa.InitializeOptions{
		Amount:    "100",
		Currency:  chapa.CurrencyETB,
		TxRef:     txRef,
		Email:     "abebe@example.com",
		FirstName: "Abebe",
		LastName:  "Bikila",
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize transaction: %v", err)
	}
	log.Printf("✅ Checkout ready: %s", checkout.CheckoutURL)

	verification, err := client.VerifyTransaction(ctx, txRef)
	if err != nil {
		log.Printf("⏳ Transaction not settled yet: %v", err)
	} else {
		log.Printf("✅ Transaction %s is %s", verification.TxRef, verification.Status)
	}

	balances, err := client.GetBalances(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to fetch balances: %v", err)
	}
	for _, balance := range balances {
		log.Printf("💰 %s available: %s", balance.Currency, balance.AvailableBalance)
	}
}
