package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUniverse is the stock/ETF watchlist scanned when none is
// configured.
var DefaultUniverse = []string{
	"SPY", "QQQ", "AAPL", "NVDA", "AMZN", "C", "JPM", "PLTR", "SOFI", "AMC", "XLE", "GLD",
}

// Config is the immutable process configuration, built once at startup
// and passed into each component. No component reads the environment
// directly.
type Config struct {
	Universe         []string
	Equity           float64
	RiskPerTrade     float64
	ATRMult          float64
	VolMult          float64
	ConsensusMin     int
	IntradayLookback time.Duration
	DailyLookback    time.Duration
	Concurrency      int
	ScanTimeout      time.Duration
	LogPath          string
	CheckpointPath   string
	Timezone         string
	Feed             string
	LogLevel         string
	LiveEquity       bool
	Force            bool
	TradeBaseURL     string
	APIKey           string
	APISecret        string
}

// Load builds the configuration from flags and the environment. A .env
// file in the working directory is honored when present. The threshold
// knobs keep their historical environment names (EQUITY,
// RISK_PER_TRADE, ATR_MULT, VOL_MULT, CONSENSUS_MIN, UNIVERSE) so a
// scheduler can tune them without touching the command line.
func Load(args []string) (Config, error) {
	var cfg Config
	var universe string

	_ = godotenv.Load()

	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.StringVar(&universe, "universe", envString("UNIVERSE", strings.Join(DefaultUniverse, ",")), "comma-separated instrument universe")
	fs.Float64Var(&cfg.Equity, "equity", envFloat("EQUITY", 10000), "account equity for sizing")
	fs.Float64Var(&cfg.RiskPerTrade, "risk-per-trade", envFloat("RISK_PER_TRADE", 0.01), "risk fraction per trade")
	fs.Float64Var(&cfg.ATRMult, "atr-mult", envFloat("ATR_MULT", 1.5), "ATR stop multiplier")
	fs.Float64Var(&cfg.VolMult, "vol-mult", envFloat("VOL_MULT", 3.0), "volume surge multiplier")
	fs.IntVar(&cfg.ConsensusMin, "consensus-min", envInt("CONSENSUS_MIN", 2), "minimum detector consensus")
	fs.DurationVar(&cfg.IntradayLookback, "intraday-lookback", 7*24*time.Hour, "intraday bar lookback")
	fs.DurationVar(&cfg.DailyLookback, "daily-lookback", 10*24*time.Hour, "daily bar lookback")
	fs.IntVar(&cfg.Concurrency, "concurrency", 4, "parallel instrument evaluations")
	fs.DurationVar(&cfg.ScanTimeout, "scan-timeout", 0, "timeout for the whole cycle, 0 for none")
	fs.StringVar(&cfg.LogPath, "log-path", "trades_log.csv", "path to the decision log")
	fs.StringVar(&cfg.CheckpointPath, "checkpoint-path", "checkpoint.json", "path to the scan checkpoint")
	fs.StringVar(&cfg.Timezone, "timezone", "America/Toronto", "trading calendar timezone")
	fs.StringVar(&cfg.Feed, "feed", "iex", "market data feed: iex or sip")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.LiveEquity, "live-equity", false, "rebase sizing equity from the live account")
	fs.BoolVar(&cfg.Force, "force", false, "scan even outside the session window")
	fs.StringVar(&cfg.TradeBaseURL, "trade-base-url", "https://paper-api.alpaca.markets", "trading API base URL")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Universe = splitUniverse(universe)
	cfg.APIKey = os.Getenv("APCA_API_KEY_ID")
	cfg.APISecret = os.Getenv("APCA_API_SECRET_KEY")

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location resolves the trading-calendar timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func validate(cfg Config) error {
	if len(cfg.Universe) == 0 {
		return fmt.Errorf("universe must not be empty")
	}
	if cfg.Equity < 0 {
		return fmt.Errorf("equity must be >= 0")
	}
	if cfg.RiskPerTrade <= 0 || cfg.RiskPerTrade > 1 {
		return fmt.Errorf("risk-per-trade must be in (0, 1]")
	}
	if cfg.ATRMult <= 0 {
		return fmt.Errorf("atr-mult must be > 0")
	}
	if cfg.VolMult <= 0 {
		return fmt.Errorf("vol-mult must be > 0")
	}
	if cfg.ConsensusMin < 1 {
		return fmt.Errorf("consensus-min must be >= 1")
	}
	if cfg.IntradayLookback <= 0 || cfg.DailyLookback <= 0 {
		return fmt.Errorf("lookbacks must be > 0")
	}
	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1")
	}
	if cfg.ScanTimeout < 0 {
		return fmt.Errorf("scan-timeout must be >= 0")
	}
	if cfg.Feed != "iex" && cfg.Feed != "sip" {
		return fmt.Errorf("invalid feed: %s", cfg.Feed)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return fmt.Errorf("APCA_API_KEY_ID and APCA_API_SECRET_KEY are required")
	}
	return nil
}

func splitUniverse(value string) []string {
	parts := strings.Split(value, ",")
	universe := make([]string, 0, len(parts))
	for _, part := range parts {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol != "" {
			universe = append(universe, symbol)
		}
	}
	return universe
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
