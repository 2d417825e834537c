package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/report"
	"reviewlens/internal/ui"
)

var (
	reportName       string
	reportLimit      int
	reportRefreshUDF bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run sentiment aggregation reports",
	Long: `Run the fixed catalog of sentiment aggregation queries against the loaded
review table and render the results as tables. Sentiment labels come from the
warehouse-side ANALYZE_SENTIMENT function; pass --refresh-udf to (re)register
it before running.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportName, "report", "r", "", "Run a single report by name")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0, "Cap rendered rows per report")
	reportCmd.Flags().BoolVar(&reportRefreshUDF, "refresh-udf", false, "Create or replace the sentiment function first")
}

func runReport(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	service, err := connectService(appConfig)
	if err != nil {
		return err
	}
	defer service.Close()

	if reportRefreshUDF {
		ui.ShowInfo("Registering sentiment function")
		if err := service.CreateSentimentFunction(cmd.Context()); err != nil {
			return err
		}
	}

	table := fmt.Sprintf("%s.%s.%s",
		appConfig.Snowflake.Database,
		appConfig.Snowflake.Schema,
		orDefault(appConfig.Load.Table, "RAW_REVIEWS"),
	)

	limit := reportLimit
	if limit == 0 {
		limit = appConfig.Reports.Limit
	}

	runner := report.NewRunner(service, table, limit)

	ui.ShowHeader("ReviewLens - Reports")

	if reportName != "" {
		rep, ok := report.Lookup(table, reportName)
		if !ok {
			return fmt.Errorf("unknown report %q; available: %s", reportName, reportNames(table))
		}
		result, err := runner.Run(cmd.Context(), rep)
		if err != nil {
			return err
		}
		report.Render(os.Stdout, result)
		return nil
	}

	return runner.RunAll(cmd.Context(), os.Stdout)
}

func reportNames(table string) string {
	names := ""
	for i, r := range report.Catalog(table) {
		if i > 0 {
			names += ", "
		}
		names += r.Name
	}
	return names
}
