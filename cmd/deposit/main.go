package main

import (
	"errors"
	"flag"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/types"
)

func main() {
	amount := flag.Uint64("amount", 1_000_000, "deposit amount in raw units (1_000_000 = 1 USDC)")
	mintStr := flag.String("mint", config.USDC_MINT.String(), "asset mint to deposit")
	flag.Parse()

	if err := config.InitEnv(); err != nil {
		log.Fatal(err)
	}
	if config.Payer == nil {
		log.Fatal("PAYER_PRIVATE_KEY is required")
	}
	if config.RpcHttpUrl == "" {
		log.Fatal("RPC_HTTP_URL is required")
	}

	mint, err := solana.PublicKeyFromBase58(*mintStr)
	if err != nil {
		log.Fatalf("invalid mint: %v", err)
	}

	client := carrot.NewFromEndpoint(config.RpcHttpUrl)
	user := config.Payer

	assetBalance, err := client.GetAssetBalance(user.PublicKey(), mint)
	if err != nil {
		log.Fatal(err)
	}
	crtBalance, err := client.GetCrtBalance(user.PublicKey())
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wallet %s", user.PublicKey())
	log.Printf("asset balance: %d, CRT balance: %d", assetBalance, crtBalance)
	log.Printf("depositing %d of %s", *amount, mint)

	signature, err := client.Deposit(user, mint, *amount)
	if err != nil {
		var insufficient *types.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			log.Fatalf("insufficient balance: required %d, available %d", insufficient.Required, insufficient.Available)
		}
		log.Fatal(err)
	}

	log.Printf("deposit confirmed: https://solscan.io/tx/%s", signature)

	newCrtBalance, err := client.GetCrtBalance(user.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("new CRT balance: %d (+%d)", newCrtBalance, newCrtBalance-crtBalance)
}
