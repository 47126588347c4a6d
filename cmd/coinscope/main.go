package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"CoinScope/internal/api"
	"CoinScope/internal/chart"
	"CoinScope/internal/collector"
	"CoinScope/internal/config"
	"CoinScope/internal/logger"
	"CoinScope/internal/scheduler"
	"CoinScope/internal/store"

	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = cmdServe(os.Args[2:])
	case "report":
		err = cmdReport(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "export":
		err = cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  coinscope serve  [--config configs/config.yaml]")
	fmt.Println("  coinscope report [--config ...] [--symbol BTCUSDT]")
	fmt.Println("  coinscope import [--config ...] --dir data/candles [--sentiment data/fng.json] [--symbol BTCUSDT]")
	fmt.Println("  coinscope export [--config ...] --out data/export [--symbol BTCUSDT]")
}

// setup loads and validates the config and initializes the logger.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	cfgPath := fs.String("config", config.Path(), "Path to YAML config")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	logger.Init("coinscope", cfg.Log.Level)
	return cfg, nil
}

// openSource builds the configured source. The returned closer releases
// the database when the source is backed by one.
func openSource(ctx context.Context, cfg *config.Config) (collector.Source, func(), error) {
	noop := func() {}
	var primary collector.Source
	closer := noop

	switch cfg.Source.Kind {
	case config.SourceMock:
		primary = collector.NewMockSource(60000)
	case config.SourceFile:
		primary = &collector.FileSource{Dir: cfg.Source.CandlesDir, SentimentPath: cfg.Source.SentimentPath}
	case config.SourceSQL:
		st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open store: %w", err)
		}
		primary = &collector.StoreSource{Store: st}
		closer = func() {
			if err := st.Close(); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
		}
	}

	switch cfg.Source.Fallback {
	case config.SourceMock:
		return &collector.FallbackSource{Primary: primary, Secondary: collector.NewMockSource(60000)}, closer, nil
	case config.SourceFile:
		secondary := &collector.FileSource{Dir: cfg.Source.CandlesDir, SentimentPath: cfg.Source.SentimentPath}
		return &collector.FallbackSource{Primary: primary, Secondary: secondary}, closer, nil
	}
	return primary, closer, nil
}

func newCollector(cfg *config.Config, src collector.Source) (*collector.Collector, error) {
	overlays, err := chart.ParseOverlays(cfg.Analysis.Overlays)
	if err != nil {
		return nil, err
	}
	return collector.NewCollector(src, collector.Options{
		Tier:     cfg.Tier,
		Overlays: overlays,
		Backtest: cfg.Analysis.Backtest,
	}), nil
}

func cmdServe(args []string) error {
	cfg, err := setup(flag.NewFlagSet("serve", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	log.Info().Str("source", cfg.Source.Kind).Strs("symbols", cfg.Analysis.Symbols).Msg("CoinScope starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	col, err := newCollector(cfg, src)
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(ctx, col, cfg.Analysis.Symbols, cfg.Analysis.Timeframes)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()
	go sched.RefreshNow()

	overlays, _ := chart.ParseOverlays(cfg.Analysis.Overlays)
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewHandler(sched, api.Options{
			Mode:        cfg.Server.Mode,
			CORSOrigins: cfg.Server.CORSOrigins,
			Symbols:     cfg.Analysis.Symbols,
			Overlays:    overlays,
			Backtest:    cfg.Analysis.Backtest,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}
	log.Info().Msg("CoinScope stopped")
	return nil
}

func cmdReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	symbol := fs.String("symbol", "", "Symbol to report (default: every configured symbol)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	col, err := newCollector(cfg, src)
	if err != nil {
		return err
	}
	symbols := cfg.Analysis.Symbols
	if *symbol != "" {
		symbols = []string{strings.ToUpper(*symbol)}
	}
	for _, sym := range symbols {
		if err := printReport(ctx, col, sym, cfg.Analysis.Timeframes); err != nil {
			return err
		}
	}
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory holding <SYMBOL>_<interval>.{parquet,csv,json} candle files")
	sentimentPath := fs.String("sentiment", "", "Fear & Greed JSON or CSV file")
	symbol := fs.String("symbol", "", "Symbol to import (default: every configured symbol)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if *dir == "" {
		*dir = cfg.Source.CandlesDir
	}
	if *sentimentPath == "" {
		*sentimentPath = cfg.Source.SentimentPath
	}
	if *dir == "" {
		return errors.New("--dir is required")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	src := &collector.FileSource{Dir: *dir, SentimentPath: *sentimentPath}
	symbols := cfg.Analysis.Symbols
	if *symbol != "" {
		symbols = []string{strings.ToUpper(*symbol)}
	}
	for _, sym := range symbols {
		res, err := collector.Import(ctx, src, st, sym, cfg.Analysis.Timeframes)
		if err != nil {
			return err
		}
		log.Info().Str("symbol", sym).Interface("candles", res.Candles).Int("sentiment", res.Sentiment).Msg("import done")
	}
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "data/export", "Output directory for parquet files")
	symbol := fs.String("symbol", "", "Symbol to export (default: every configured symbol)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	symbols := cfg.Analysis.Symbols
	if *symbol != "" {
		symbols = []string{strings.ToUpper(*symbol)}
	}
	for _, sym := range symbols {
		written, err := collector.Export(ctx, st, *out, sym, cfg.Analysis.Timeframes)
		if err != nil {
			return err
		}
		log.Info().Str("symbol", sym).Strs("files", written).Msg("export done")
	}
	return nil
}
