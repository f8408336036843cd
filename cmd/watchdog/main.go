package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/agent"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/config"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/dashboard"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/db"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/detector"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/honeypot"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/portfolio"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/report"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/spamlist"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/telegram"
	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/tui"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config invalid")
	}

	spam := spamlist.New(cfg.SpamListBaseURL, cfg.HTTPTimeout)
	sim := honeypot.New(cfg.HoneypotAPIURL, cfg.SolanaRPCURL, cfg.DexScreenerAPI, cfg.HTTPTimeout)
	wallet := portfolio.New(cfg.PortfolioAPIURL, cfg.PortfolioAPIKey, cfg.HTTPTimeout)
	prober := detector.New(cfg)

	eng := engine.New(spam, sim, wallet, prober, engine.Options{
		MediumRiskThreshold: cfg.WalletMediumRiskThreshold,
		HighRiskThreshold:   cfg.WalletHighRiskThreshold,
		RecheckConcurrency:  cfg.RecheckConcurrency,
	})

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "analyze":
			runAnalyze(eng, args[1:])
			return
		case "chat":
			if err := tui.Run(agent.New(eng)); err != nil {
				log.Fatal().Err(err).Msg("chat session failed")
			}
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			printUsage()
			os.Exit(1)
		}
	}

	runService(cfg, eng, spam)
}

// runAnalyze is the one-shot CLI mode: analyze <address> [chain] [intent].
func runAnalyze(eng *engine.Engine, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	address := args[0]
	var chain chains.Chain
	intent := engine.IntentHoneypotCheck

	for _, a := range args[1:] {
		switch a {
		case "wallet":
			intent = engine.IntentWallet
		case "spam":
			intent = engine.IntentTokenSpamCheck
		case "honeypot":
			intent = engine.IntentHoneypotCheck
		default:
			chain = chains.Parse(a)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	v, err := eng.Analyze(ctx, address, chain, intent)
	if err != nil {
		log.Fatal().Err(err).Str("addr", address).Msg("invalid address")
	}
	report.Print(os.Stdout, v)
}

// runService starts the long-running mode: dashboard, Telegram bot, and
// the periodic spam-dataset refresh.
func runService(cfg *config.Config, eng *engine.Engine, spam *spamlist.Lookup) {
	log.Info().Msg("🐾 ChainWatchdog starting...")

	store, err := db.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigCh; log.Info().Msg("shutting down..."); cancel() }()

	c := cron.New()
	if _, err := c.AddFunc(cfg.SpamRefreshSpec, func() {
		spam.Refresh()
		log.Info().Msg("🧹 spam datasets invalidated, next lookup refetches")
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.SpamRefreshSpec).Msg("bad refresh cron spec")
	}
	c.Start()
	defer c.Stop()

	errCh := make(chan error, 4)

	dash := dashboard.New(eng, store, cfg.DashboardPort)
	go func() { errCh <- dash.Run() }()

	if cfg.TelegramBotToken != "" {
		bot := telegram.NewBot(cfg.TelegramBotToken, agent.New(eng))
		go func() { errCh <- bot.Run(ctx) }()
	} else {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}

	printBanner(cfg)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("error")
		}
	}
	log.Info().Msg("goodbye 👋")
}

func printBanner(cfg *config.Config) {
	fmt.Println("\n" + strings.Repeat("═", 60))
	fmt.Println("  🐾 CHAINWATCHDOG - RUNNING")
	fmt.Println(strings.Repeat("═", 60))
	fmt.Printf("  Dashboard: http://localhost:%d\n", cfg.DashboardPort)
	tg := "❌ Disabled (set TELEGRAM_BOT_TOKEN)"
	if cfg.TelegramBotToken != "" {
		tg = "✅ Enabled"
	}
	fmt.Printf("  Telegram:  %s\n", tg)
	fmt.Printf("  Chains:    %v\n", chains.All())
	fmt.Printf("  Refresh:   %s\n", cfg.SpamRefreshSpec)
	fmt.Println(strings.Repeat("═", 60) + "\n")
}

func printUsage() {
	fmt.Println(`chainwatchdog - crypto address risk screening

usage:
  watchdog                           run the dashboard + telegram service
  watchdog analyze <address> [chain] [wallet|spam|honeypot]
  watchdog chat                      interactive chat session`)
}
