package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"usergrid/internal/config"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the usergrid config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "endpoint:  %s\n", cfg.API.Endpoint)
		fmt.Fprintf(cmd.OutOrStdout(), "timeout:   %s\n", cfg.GetTimeout())
		fmt.Fprintf(cmd.OutOrStdout(), "cache:     %s (ttl %s)\n", cfg.Cache.Backend, cfg.GetCacheTTL())
		fmt.Fprintf(cmd.OutOrStdout(), "locale:    %s\n", cfg.UI.Locale)
		fmt.Fprintf(cmd.OutOrStdout(), "timezone:  %s\n", cfg.UI.GetLocation())
		fmt.Fprintf(cmd.OutOrStdout(), "max-len:   %d\n", cfg.UI.MaxCellLength)
		if cfg.API.Refresh != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "refresh:   %s\n", cfg.API.Refresh)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "Where to write the file (default: ~/.usergrid/config.yaml)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
