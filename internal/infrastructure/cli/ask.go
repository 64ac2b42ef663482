package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Search the catalog with a free-text request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return NewCLIError("message is empty", "Describe what you are looking for, e.g. 'silk blouse for a wedding'", nil)
		}

		services, err := loadServices()
		if err != nil {
			return err
		}

		reply, err := services.Catalog.Ask(cmd.Context(), message)
		if err != nil {
			return MapError(fmt.Errorf("failed to search catalog: %w", err))
		}

		if outputFormat == "json" {
			data, _ := json.MarshalIndent(reply, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		if reply.Message != "" {
			fmt.Println(reply.Message)
			fmt.Println()
		}
		printSuggestions(reply.Results)
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	RootCmd.AddCommand(askCmd)
}
