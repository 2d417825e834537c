package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/ui"
	"reviewlens/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure Snowflake connection and dataset settings",
	Long: `Interactive wizard that writes ~/.reviewlens/config.yaml with the Snowflake
connection, dataset partitioning defaults, and load targets. The password can
be stored in the OS keyring instead of the config file.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

type setupAnswers struct {
	Account    string
	Username   string
	Password   string
	Role       string
	Warehouse  string
	Database   string
	Schema     string
	SourcePath string
	OutputDir  string
	Prefix     string
	ChunkCount int
	UseKeyring bool
}

func runSetup(cmd *cobra.Command, args []string) error {
	ui.ShowHeader("ReviewLens - Setup")

	existing, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load existing configuration: %w", err)
	}

	questions := []*survey.Question{
		{
			Name: "account",
			Prompt: &survey.Input{
				Message: "Snowflake account (e.g. xy12345.us-east-1):",
				Default: existing.Snowflake.Account,
			},
			Validate: survey.Required,
		},
		{
			Name: "username",
			Prompt: &survey.Input{
				Message: "Username:",
				Default: existing.Snowflake.Username,
			},
			Validate: survey.Required,
		},
		{
			Name: "password",
			Prompt: &survey.Password{
				Message: "Password:",
			},
			Validate: survey.Required,
		},
		{
			Name: "role",
			Prompt: &survey.Input{
				Message: "Role:",
				Default: orDefault(existing.Snowflake.Role, "SYSADMIN"),
			},
			Validate: survey.Required,
		},
		{
			Name: "warehouse",
			Prompt: &survey.Input{
				Message: "Warehouse:",
				Default: orDefault(existing.Snowflake.Warehouse, "ANALYTICS_WH"),
			},
			Validate: survey.Required,
		},
		{
			Name: "database",
			Prompt: &survey.Input{
				Message: "Database:",
				Default: orDefault(existing.Snowflake.Database, "REVIEWS_DB"),
			},
			Validate: survey.Required,
		},
		{
			Name: "schema",
			Prompt: &survey.Input{
				Message: "Schema:",
				Default: orDefault(existing.Snowflake.Schema, "PUBLIC"),
			},
			Validate: survey.Required,
		},
		{
			Name: "sourcepath",
			Prompt: &survey.Input{
				Message: "Review dataset path (newline-delimited JSON):",
				Default: existing.Dataset.SourcePath,
			},
		},
		{
			Name: "outputdir",
			Prompt: &survey.Input{
				Message: "Chunk output directory:",
				Default: orDefault(existing.Dataset.OutputDir, "chunks"),
			},
		},
		{
			Name: "prefix",
			Prompt: &survey.Input{
				Message: "Chunk file prefix:",
				Default: orDefault(existing.Dataset.Prefix, "reviews"),
			},
		},
		{
			Name: "chunkcount",
			Prompt: &survey.Input{
				Message: "Default chunk count:",
				Default: "12",
			},
		},
		{
			Name: "usekeyring",
			Prompt: &survey.Confirm{
				Message: "Store the password in the OS keyring instead of the config file?",
				Default: true,
			},
		},
	}

	var answers setupAnswers
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	newConfig := &models.Config{
		Snowflake: models.Snowflake{
			Account:    answers.Account,
			Username:   answers.Username,
			Role:       answers.Role,
			Warehouse:  answers.Warehouse,
			Database:   answers.Database,
			Schema:     answers.Schema,
			UseKeyring: answers.UseKeyring,
		},
		Dataset: models.Dataset{
			SourcePath: answers.SourcePath,
			OutputDir:  answers.OutputDir,
			Prefix:     answers.Prefix,
			ChunkCount: answers.ChunkCount,
		},
		Load: models.Load{
			Stage:        "REVIEW_STAGE",
			Table:        "RAW_REVIEWS",
			FileFormat:   "NDJSON_FORMAT",
			AutoCompress: true,
		},
	}

	if answers.UseKeyring {
		if err := config.StorePassword(answers.Username, answers.Password); err != nil {
			ui.ShowWarning(fmt.Sprintf("Keyring unavailable (%v); storing password in config file", err))
			newConfig.Snowflake.UseKeyring = false
			newConfig.Snowflake.Password = answers.Password
		}
	} else {
		newConfig.Snowflake.Password = answers.Password
	}

	if err := config.Save(newConfig); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	ui.ShowSuccess(fmt.Sprintf("Configuration written to %s", config.GetConfigFile()))
	return nil
}
