package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the client configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default fashionous.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path = filepath.Join(cwd, config.DefaultFile)
		}

		if _, err := os.Stat(path); err == nil && !force {
			return NewCLIError(fmt.Sprintf("%s already exists", path), "Use --force to overwrite it", nil)
		}

		if err := config.Save(path, config.Default()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("base_url:     %s\n", cfg.BaseURL)
		fmt.Printf("options_path: %s\n", cfg.OptionsPath)
		fmt.Printf("match_path:   %s\n", cfg.MatchPath)
		fmt.Printf("chat_path:    %s\n", cfg.ChatPath)
		fmt.Printf("order_path:   %s\n", cfg.OrderPath)
		fmt.Printf("timeout:      %ds (retries: %d, delay: %dms)\n", cfg.TimeoutSec, cfg.MaxRetries, cfg.RetryDelayMs)
		fmt.Printf("back_policy:  %s\n", cfg.Policy())
		fmt.Printf("voice:        %s (%s)\n", cfg.Voice.Engine, cfg.Voice.Locale)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(configCmd)
}
