package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

type Config struct {
	// Honeypot simulation API
	HoneypotAPIURL string

	// Portfolio / balance aggregation API
	PortfolioAPIURL string
	PortfolioAPIKey string

	// Static spam datasets (per-chain token + NFT blocklists)
	SpamListBaseURL string
	SpamRefreshSpec string // cron spec for dataset refresh

	// Block explorer API keys, per chain
	ExplorerKeys map[chains.Chain]string

	// Avalanche has no etherscan-style explorer API; it uses a dedicated
	// indexing service
	AvaxIndexerURL string

	// Solana
	SolanaRPCURL string

	// DexScreener (Solana liquidity signal)
	DexScreenerAPI string

	// Frontends
	TelegramBotToken string
	DashboardPort    int

	// Per-external-call timeout
	HTTPTimeout time.Duration

	// Wallet risk tier thresholds (fractions of spam holdings)
	WalletMediumRiskThreshold float64
	WalletHighRiskThreshold   float64

	// Bounded fan-out for the per-token local re-check
	RecheckConcurrency int

	// DB
	DBPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HoneypotAPIURL:  envOr("HONEYPOT_API_URL", "https://api.honeypot.is"),
		PortfolioAPIURL: envOr("PORTFOLIO_API_URL", "https://api.covalenthq.com"),
		PortfolioAPIKey: os.Getenv("PORTFOLIO_API_KEY"),

		SpamListBaseURL: envOr("SPAMLIST_BASE_URL", "https://raw.githubusercontent.com/scamsniffer/spam-token-list/main"),
		SpamRefreshSpec: envOr("SPAMLIST_REFRESH_CRON", "@every 6h"),

		AvaxIndexerURL: envOr("AVAX_INDEXER_URL", "https://glacier-api.avax.network"),
		SolanaRPCURL:   envOr("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		DexScreenerAPI: envOr("DEXSCREENER_API", "https://api.dexscreener.com"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DashboardPort:    envInt("DASHBOARD_PORT", 8080),

		HTTPTimeout: time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,

		WalletMediumRiskThreshold: envFloat("WALLET_MEDIUM_RISK_THRESHOLD", 0.1),
		WalletHighRiskThreshold:   envFloat("WALLET_HIGH_RISK_THRESHOLD", 0.3),
		RecheckConcurrency:        envInt("RECHECK_CONCURRENCY", 8),

		DBPath: envOr("DB_PATH", "chain_watchdog.db"),
	}

	cfg.ExplorerKeys = map[chains.Chain]string{
		chains.ChainEthereum: os.Getenv("ETHERSCAN_API_KEY"),
		chains.ChainBSC:      os.Getenv("BSCSCAN_API_KEY"),
		chains.ChainPolygon:  os.Getenv("POLYGONSCAN_API_KEY"),
		chains.ChainArbitrum: os.Getenv("ARBISCAN_API_KEY"),
		chains.ChainOptimism: os.Getenv("OPTIMISM_ETHERSCAN_API_KEY"),
		chains.ChainGnosis:   os.Getenv("GNOSISSCAN_API_KEY"),
		chains.ChainBase:     os.Getenv("BASESCAN_API_KEY"),
	}

	return cfg, nil
}

func (c *Config) GetExplorerURL(chain chains.Chain) string {
	switch chain {
	case chains.ChainEthereum:
		return "https://api.etherscan.io/api"
	case chains.ChainBSC:
		return "https://api.bscscan.com/api"
	case chains.ChainPolygon:
		return "https://api.polygonscan.com/api"
	case chains.ChainArbitrum:
		return "https://api.arbiscan.io/api"
	case chains.ChainOptimism:
		return "https://api-optimistic.etherscan.io/api"
	case chains.ChainGnosis:
		return "https://api.gnosisscan.io/api"
	case chains.ChainBase:
		return "https://api.basescan.org/api"
	default:
		return ""
	}
}

func (c *Config) GetExplorerKey(chain chains.Chain) string {
	return c.ExplorerKeys[chain]
}

func (c *Config) Validate() error {
	if err := chains.Verify(); err != nil {
		return err
	}
	if c.HTTPTimeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS too low: %s", c.HTTPTimeout)
	}
	if c.WalletMediumRiskThreshold <= 0 || c.WalletHighRiskThreshold <= c.WalletMediumRiskThreshold {
		return fmt.Errorf("wallet risk thresholds must satisfy 0 < medium < high")
	}
	return nil
}

// helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
