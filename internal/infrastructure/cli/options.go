package cli

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the answer options offered for each question",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		services, err := loadServices()
		if err != nil {
			return err
		}

		opts, err := services.Catalog.FetchOptions(cmd.Context())
		if err != nil {
			return MapError(fmt.Errorf("failed to fetch options: %w", err))
		}

		steps := questionnaire.WithOptions(questionnaire.DefaultSteps(), opts)
		if outputFormat == "json" {
			data, _ := json.MarshalIndent(steps, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		for i, step := range steps {
			fmt.Printf("%d. %s (%s)\n", i+1, step.Label, step.Key)
			if len(step.Options) == 0 {
				fmt.Println("   (no options)")
			}
			for _, opt := range step.Options {
				fmt.Printf("   - %-20s %s\n", opt, questionnaire.Humanize(opt))
			}
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	RootCmd.AddCommand(optionsCmd)
}
