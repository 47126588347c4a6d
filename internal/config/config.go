package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"CoinScope/internal/backtest"
	"CoinScope/internal/calculator"
	"CoinScope/internal/chart"
	"CoinScope/internal/model"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceMock = "mock"
	SourceFile = "file"
	SourceSQL  = "sql"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Source struct {
		Kind          string `yaml:"kind"`
		Fallback      string `yaml:"fallback"`
		CandlesDir    string `yaml:"candles_dir"`
		SentimentPath string `yaml:"sentiment_path"`
	} `yaml:"source"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Analysis struct {
		Symbols    []string        `yaml:"symbols"`
		Timeframes []string        `yaml:"timeframes"`
		Tier       string          `yaml:"tier"`
		Overlays   []string        `yaml:"overlays"`
		Backtest   backtest.Config `yaml:"backtest"`
	} `yaml:"analysis"`
	Server struct {
		Addr        string   `yaml:"addr"`
		Mode        string   `yaml:"mode"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads .env (if present) and the YAML file at path, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"COINSCOPE_SOURCE":   &c.Source.Kind,
		"COINSCOPE_FALLBACK": &c.Source.Fallback,
		"CANDLES_DIR":        &c.Source.CandlesDir,
		"SENTIMENT_PATH":     &c.Source.SentimentPath,
		"DB_DRIVER":          &c.Database.Driver,
		"DATABASE_URL":       &c.Database.DSN,
		"PROFILE_TIER":       &c.Analysis.Tier,
		"SERVER_ADDR":        &c.Server.Addr,
		"GIN_MODE":           &c.Server.Mode,
		"REFRESH_CRON":       &c.Schedule.RefreshCron,
		"LOG_LEVEL":          &c.Log.Level,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	list := map[string]*[]string{
		"SYMBOLS":      &c.Analysis.Symbols,
		"TIMEFRAMES":   &c.Analysis.Timeframes,
		"OVERLAYS":     &c.Analysis.Overlays,
		"CORS_ORIGINS": &c.Server.CORSOrigins,
	}
	for key, dst := range list {
		if v := os.Getenv(key); v != "" {
			*dst = splitList(v)
		}
	}

	if v := os.Getenv("ENTRY_AMOUNT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ENTRY_AMOUNT: %w", err)
		}
		c.Analysis.Backtest.EntryAmount = f
	}
	if v := os.Getenv("FEAR_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FEAR_THRESHOLD: %w", err)
		}
		c.Analysis.Backtest.FearThreshold = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	bt := backtest.DefaultConfig()
	if c.Source.Kind == "" {
		c.Source.Kind = SourceMock
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = "data/coinscope.db"
	}
	if len(c.Analysis.Symbols) == 0 {
		c.Analysis.Symbols = []string{"BTCUSDT"}
	}
	if len(c.Analysis.Timeframes) == 0 {
		c.Analysis.Timeframes = []string{"1h", "4h", "1d"}
	}
	if len(c.Analysis.Overlays) == 0 {
		c.Analysis.Overlays = []string{string(model.OverlayEMA), string(model.OverlayBollinger), string(model.OverlayRSI), string(model.OverlayVolume)}
	}
	if c.Analysis.Backtest.EntryAmount == 0 {
		c.Analysis.Backtest.EntryAmount = bt.EntryAmount
	}
	if c.Analysis.Backtest.FearThreshold == 0 {
		c.Analysis.Backtest.FearThreshold = bt.FearThreshold
	}
	if c.Analysis.Backtest.MinGapDays == 0 {
		c.Analysis.Backtest.MinGapDays = bt.MinGapDays
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceMock:
	case SourceFile:
		if c.Source.CandlesDir == "" {
			return fmt.Errorf("source.candles_dir is required for the file source")
		}
	case SourceSQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the sql source")
		}
	default:
		return fmt.Errorf("source.kind %q is not one of mock, file, sql", c.Source.Kind)
	}
	switch c.Source.Fallback {
	case "", SourceMock, SourceFile:
	default:
		return fmt.Errorf("source.fallback %q is not one of mock, file", c.Source.Fallback)
	}
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverPostgres {
		return fmt.Errorf("database.driver %q is not one of sqlite, postgres", c.Database.Driver)
	}

	for _, tf := range c.Analysis.Timeframes {
		if _, err := calculator.TimeframeClass(tf); err != nil {
			return fmt.Errorf("analysis.timeframes: %w", err)
		}
	}
	switch model.ProfileTier(c.Analysis.Tier) {
	case "", model.TierShort, model.TierMid, model.TierLong:
	default:
		return fmt.Errorf("analysis.tier %q is not one of short, mid, long", c.Analysis.Tier)
	}
	if _, err := chart.ParseOverlays(c.Analysis.Overlays); err != nil {
		return fmt.Errorf("analysis.overlays: %w", err)
	}
	bt := c.Analysis.Backtest
	if bt.EntryAmount <= 0 {
		return fmt.Errorf("analysis.backtest.entry_amount must be positive")
	}
	if bt.FearThreshold < 0 || bt.FearThreshold > 100 {
		return fmt.Errorf("analysis.backtest.fear_threshold must be within 0-100")
	}
	if bt.MinGapDays < 1 {
		return fmt.Errorf("analysis.backtest.min_gap_days must be at least 1")
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q is not one of debug, release, test", c.Server.Mode)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("schedule.refresh_cron: %w", err)
	}
	return nil
}

// Tier returns the configured profile tier, or the default for interval when unset.
func (c *Config) Tier(interval string) model.ProfileTier {
	if c.Analysis.Tier != "" {
		return model.ProfileTier(c.Analysis.Tier)
	}
	return calculator.DefaultTier(interval)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
