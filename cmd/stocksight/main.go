package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stocksight/stocksight/pkg/infrastructure/config"
	"github.com/stocksight/stocksight/pkg/infrastructure/obs"
	"github.com/stocksight/stocksight/pkg/interfaces/cli/commands"
)

func main() {
	defaults := config.Load()

	// Command line flags, environment values act as defaults
	var (
		csvDir   = flag.String("csv", defaults.CSVDir, "Directory containing snapshot CSV files")
		dsn      = flag.String("dsn", defaults.MySQLDSN, "MySQL DSN for the snapshot database")
		stateDir = flag.String("state", defaults.StateDir, "Directory for the acknowledged-alert store")
		period   = flag.String("period", defaults.DefaultPeriod, "Analysis period: 7d, 30d, 3m, 6m, 1y, all")
		asOf     = flag.String("as-of", "", "Reference instant in RFC3339 (default: now)")
		format   = flag.String("format", "text", "Output format: text, json")
		ackIDs   = flag.String("ack", "", "Comma-separated numeric alert ids to acknowledge")
		ackAll   = flag.Bool("ack-all", false, "Acknowledge every alert in the computed feed")
		horizon  = flag.Int("maintenance-horizon", defaults.MaintenanceHorizonDays, "Days ahead to flag upcoming maintenance")
		topN     = flag.Int("top", defaults.TopN, "Number of entries in the outbound rankings")
		help     = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	obs.InitLogger(defaults.LogLevel())

	cmd := commands.NewDashboardCommand(commands.Config{
		CSVDir:                 *csvDir,
		MySQLDSN:               *dsn,
		StateDir:               *stateDir,
		Period:                 *period,
		AsOf:                   *asOf,
		Format:                 *format,
		AckIDs:                 *ackIDs,
		AckAll:                 *ackAll,
		MaintenanceHorizonDays: *horizon,
		TopN:                   *topN,
		Help:                   *help,
	})
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
