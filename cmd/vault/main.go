package main

import (
	"log"

	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/config"
)

func main() {
	if err := config.InitEnv(); err != nil {
		log.Fatal(err)
	}
	if config.RpcHttpUrl == "" {
		log.Fatal("RPC_HTTP_URL is required")
	}

	client := carrot.NewFromEndpoint(config.RpcHttpUrl)

	vault, err := client.FetchVault()
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("vault %s", config.VAULT_ADDRESS)
	log.Printf("authority: %s", vault.Authority)
	log.Printf("shares mint: %s", vault.Shares)
	log.Printf("paused: %v", vault.Paused)
	log.Printf("redemption fee: %d bps, management fee: %d bps, performance fee: %d bps",
		vault.Fee.RedemptionFeeBps, vault.Fee.ManagementFeeBps, vault.Fee.PerformanceFeeBps)

	for _, asset := range vault.Assets {
		log.Printf("asset %d: mint %s (%d decimals), reserve %s, oracle %s",
			asset.AssetID, asset.Mint, asset.Decimals, asset.Ata, asset.Oracle)
	}

	for _, strategy := range vault.Strategies {
		log.Printf("strategy %d: asset %d, balance %d, net earnings %d",
			strategy.StrategyID, strategy.AssetID, strategy.Balance, strategy.NetEarnings)
	}
}
