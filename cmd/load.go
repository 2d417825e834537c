package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/snowflake"
	"reviewlens/internal/ui"
	"reviewlens/pkg/models"
)

var loadPattern string

var loadCmd = &cobra.Command{
	Use:   "load [chunk-dir]",
	Short: "Stage chunk files and bulk-load them into Snowflake",
	Long: `Upload every chunk file in a directory to an internal Snowflake stage with
PUT, then issue a single COPY INTO so the warehouse ingests the files in
parallel, one worker per file.

The stage, JSON file format, and landing table are created on first use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadPattern, "pattern", "*.json", "Glob pattern for chunk files")
}

func runLoad(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dir := appConfig.Dataset.OutputDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no chunk directory given and none configured; run 'reviewlens setup' or pass a directory")
	}

	service, err := connectService(appConfig)
	if err != nil {
		return err
	}
	defer service.Close()

	loader := snowflake.NewLoader(service, snowflake.LoadOptions{
		Database:       appConfig.Snowflake.Database,
		Schema:         appConfig.Snowflake.Schema,
		Stage:          orDefault(appConfig.Load.Stage, "REVIEW_STAGE"),
		Table:          orDefault(appConfig.Load.Table, "RAW_REVIEWS"),
		FileFormat:     orDefault(appConfig.Load.FileFormat, "NDJSON_FORMAT"),
		Parallel:       appConfig.Load.Parallel,
		AutoCompress:   appConfig.Load.AutoCompress,
		PurgeAfterLoad: appConfig.Load.PurgeAfterLoad,
	})

	ui.ShowHeader("ReviewLens - Load")
	ui.ShowInfo(fmt.Sprintf("Chunk directory: %s", dir))

	var bar *ui.ProgressBar
	result, err := loader.LoadDirectory(cmd.Context(), dir, loadPattern, func(current, total int, file string) {
		if bar == nil {
			bar = ui.NewProgressBar(total)
		}
		bar.Update(current, file)
	})
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	ui.ShowSuccess(fmt.Sprintf("Loaded %d row(s) from %d file(s) in %s",
		result.RowsLoaded,
		result.FilesStaged,
		result.Duration.Round(time.Millisecond),
	))
	return nil
}

// buildSnowflakeConfig assembles the connection settings, letting viper's
// config file fill in fields the structured config leaves blank.
func buildSnowflakeConfig(appConfig *models.Config) snowflake.Config {
	return snowflake.Config{
		Account:   viperFallback(appConfig.Snowflake.Account, "snowflake.account"),
		Username:  viperFallback(appConfig.Snowflake.Username, "snowflake.username"),
		Password:  viperFallback(config.ResolvePassword(appConfig.Snowflake), "snowflake.password"),
		Database:  viperFallback(appConfig.Snowflake.Database, "snowflake.database"),
		Schema:    viperFallback(appConfig.Snowflake.Schema, "snowflake.schema"),
		Warehouse: viperFallback(appConfig.Snowflake.Warehouse, "snowflake.warehouse"),
		Role:      viperFallback(appConfig.Snowflake.Role, "snowflake.role"),
		Timeout:   parseTimeout(appConfig.Snowflake.Timeout),
	}
}

// connectService builds and connects a Snowflake service from configuration
func connectService(appConfig *models.Config) (*snowflake.Service, error) {
	sfConfig := buildSnowflakeConfig(appConfig)

	if err := snowflake.ValidateConfig(sfConfig); err != nil {
		return nil, fmt.Errorf("incomplete Snowflake configuration: %w (run 'reviewlens setup')", err)
	}

	service := snowflake.NewService(sfConfig)
	if err := service.Connect(); err != nil {
		return nil, err
	}
	return service, nil
}

func parseTimeout(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
