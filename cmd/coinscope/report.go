package main

import (
	"context"
	"fmt"

	"CoinScope/internal/collector"
	"CoinScope/internal/report"
)

func printReport(ctx context.Context, col *collector.Collector, symbol string, timeframes []string) error {
	snap, err := col.Snapshot(ctx, symbol, timeframes)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", symbol, err)
	}
	fmt.Println(report.FormatSnapshot(snap))
	return nil
}
