package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/config"
	"github.com/annolab/annoscore/internal/output"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage annoscore configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Init writes the default configuration to the home directory
(~/.annoscore/config.yaml unless --home overrides it). Refuses to
overwrite an existing file without --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}

		path := h.ConfigPath()
		if h.ConfigExists() && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show prints the configuration after merging the config file,
environment variables and defaults. API keys keep their ${ENV_VAR}
form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(configPath())
		if err != nil {
			return err
		}

		if output.IsStructured() {
			return output.Output(mgr.Get())
		}
		return output.OutputTo(os.Stdout, output.FormatYAML, mgr.Get())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
