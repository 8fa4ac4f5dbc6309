// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the charge-batch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/charge-batch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the charge-batch CLI.
var rootCmd = &cobra.Command{
	Use:   "charge-batch",
	Short: "Batch-process service charge PDFs",
	Long: `charge-batch processes a folder of service charge PDFs: it tallies the
three-letter billing codes found in the page text, writes the tally to an
Excel spreadsheet, and organizes the PDFs into a print-ready output folder.

The full pipeline runs as the process subcommand. Each stage is also
available on its own: count tallies codes, combine builds the output
folder, and inspect dumps the text lines the extractor sees.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./charge-batch.yaml or ~/.config/charge-batch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("charge-batch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "charge-batch"))
		}
	}

	viper.SetEnvPrefix("CHARGE_BATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration: defaults, then the
// config file / environment, then any flags set on cmd.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.DefaultConfig()

	if v := viper.GetString("codes.rule"); v != "" {
		cfg.Codes.Rule = v
	}
	if v := viper.GetString("sheet.filename"); v != "" {
		cfg.Sheet.Filename = v
	}
	if v := viper.GetString("sheet.update_path"); v != "" {
		cfg.Sheet.UpdatePath = v
	}
	if v := viper.GetString("merge.output_dir"); v != "" {
		cfg.Merge.OutputDir = v
	}
	if v := viper.GetString("merge.combined_name"); v != "" {
		cfg.Merge.CombinedName = v
	}
	if v := viper.GetString("merge.sort"); v != "" {
		cfg.Merge.Sort = v
	}
	if v := viper.GetString("merge.group"); v != "" {
		cfg.Merge.Group = v
	}
	if v := viper.GetString("merge.multi_name"); v != "" {
		cfg.Merge.MultiName = v
	}

	flags := cmd.Flags()
	if flags.Changed("rule") {
		cfg.Codes.Rule, _ = flags.GetString("rule")
	}
	if flags.Changed("sort") {
		cfg.Merge.Sort, _ = flags.GetString("sort")
	}
	if flags.Changed("group") {
		cfg.Merge.Group, _ = flags.GetString("group")
	}
	if flags.Changed("update-xlsx") {
		cfg.Sheet.UpdatePath, _ = flags.GetString("update-xlsx")
	}
	if flags.Changed("report") {
		cfg.Batch.ReportPath, _ = flags.GetString("report")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.Batch.Verbose = true
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
