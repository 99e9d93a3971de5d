package config

import (
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

// Carrot protocol constants. These are fixed by the on-chain deployment and
// never configurable at runtime; pointing at a devnet deployment means
// swapping this table.
var (
	CARROT_PROGRAM_ID = solana.MustPublicKeyFromBase58("CarrotwivhMpDnm27EHmRLeQ683Z1PufuqEmBZvD282s")
	VAULT_ADDRESS     = solana.MustPublicKeyFromBase58("FfCRL34rkJiMiX5emNDrYp3MdWH2mES3FvDQyFppqgpJ")
	CRT_MINT          = solana.MustPublicKeyFromBase58("CRTx1JouZhzSU6XytsE42UQraoGqiHgxabocVfARTy2s")
	USDC_MINT         = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	USDT_MINT         = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	PYUSD_MINT        = solana.MustPublicKeyFromBase58("2b1kV6DkPAnxd5ixfnxCpjxmKwqjjaYmCZfHsFu24GXo")
	LOG_PROGRAM_ID    = solana.MustPublicKeyFromBase58("7Mc3vSdRWoThArpni6t5W4XjvQf4BuMny1uC8b6VBn48")
	TOKEN_2022_ID     = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
)

// VAULT_SEED is the literal seed prefix of the vault PDA. The full seed set
// is [VAULT_SEED, CRT_MINT].
var VAULT_SEED = []byte("vault")

const (
	STABLE_DECIMALS = 6
	CRT_DECIMALS    = 9
)

var assetDecimals = map[solana.PublicKey]uint8{
	USDC_MINT:  STABLE_DECIMALS,
	USDT_MINT:  STABLE_DECIMALS,
	PYUSD_MINT: STABLE_DECIMALS,
	CRT_MINT:   CRT_DECIMALS,
}

// IsSupportedAsset reports whether mint is one of the stablecoins the vault
// accepts. CRT itself is not a depositable asset.
func IsSupportedAsset(mint solana.PublicKey) bool {
	switch mint {
	case USDC_MINT, USDT_MINT, PYUSD_MINT:
		return true
	}
	return false
}

// AssetDecimals returns the decimal precision of a whitelisted mint.
func AssetDecimals(mint solana.PublicKey) (uint8, bool) {
	d, ok := assetDecimals[mint]
	return d, ok
}

// TokenProgramForMint returns the owning token program of a mint. pyUSD and
// CRT live under Token-2022, USDC and USDT under the legacy token program.
func TokenProgramForMint(mint solana.PublicKey) solana.PublicKey {
	if mint == PYUSD_MINT || mint == CRT_MINT {
		return TOKEN_2022_ID
	}
	return solana.TokenProgramID
}

var (
	Payer         *solana.Wallet
	RpcHttpUrl    string
	RpcWsUrl      string
	RedisAddr     string
	RedisPassword string
	MySqlDsn      string
	MySqlDbName   string
	Port          string
)

func InitEnv() error {
	godotenv.Load()

	if key := os.Getenv("PAYER_PRIVATE_KEY"); key != "" {
		pay, err := solana.WalletFromPrivateKeyBase58(key)
		if err != nil {
			return err
		}
		Payer = pay
	}

	RpcHttpUrl = os.Getenv("RPC_HTTP_URL")
	RpcWsUrl = os.Getenv("RPC_WS_URL")
	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	MySqlDsn = os.Getenv("MYSQL_DSN")
	MySqlDbName = os.Getenv("MYSQL_DB_NAME")
	if MySqlDbName == "" {
		MySqlDbName = "carrot"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	return nil
}
