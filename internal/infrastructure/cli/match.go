package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/application"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find blouses for answers given as flags",
	Long: `Posts the given answers to the matching endpoint without running the
interactive questionnaire. Questions without a flag count as skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")

		criteria := questionnaire.Criteria{}
		for _, step := range questionnaire.DefaultSteps() {
			v, _ := cmd.Flags().GetString(step.Key)
			criteria[step.Key] = v
		}
		criteria = criteria.Normalized()

		services, err := loadServices()
		if err != nil {
			return err
		}

		results, err := services.Catalog.MatchProducts(cmd.Context(), criteria)
		if err != nil {
			return MapError(fmt.Errorf("failed to match products: %w", err))
		}

		if outputFormat == "json" {
			data, _ := json.MarshalIndent(results, "", "  ")
			fmt.Println(string(data))
			return nil
		}
		printSuggestions(results)
		return nil
	},
}

func init() {
	for _, step := range questionnaire.DefaultSteps() {
		matchCmd.Flags().String(step.Key, "", step.Label)
	}
	matchCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	RootCmd.AddCommand(matchCmd)
}

func printSuggestions(results []questionnaire.Suggestion) {
	if len(results) == 0 {
		fmt.Println(application.PopularText)
		fmt.Println(application.MatchesHeading)
		fmt.Println(application.NoProductsText)
		return
	}

	fmt.Println(application.MatchesHeading)
	fmt.Println()
	for i, s := range results {
		occasion := "N/A"
		if s.OccasionTags != nil {
			occasion = strings.Join(s.OccasionTags, ", ")
		}
		fmt.Printf("%d. %s\n", i+1, s.Title)
		fmt.Printf("   ID:       %s\n", s.DesignID)
		fmt.Printf("   Price:    %s\n", application.PriceLabel(s))
		fmt.Printf("   Fabric:   %s\n", application.OrNA(s.Fabric.String()))
		fmt.Printf("   Neckline: %s | Sleeve: %s\n", application.OrNA(s.Neckline), application.OrNA(s.Sleeve))
		fmt.Printf("   Occasion: %s\n", occasion)
		if s.FrontImageURL != "" {
			fmt.Printf("   Image:    %s\n", s.FrontImageURL)
		}
	}
}
