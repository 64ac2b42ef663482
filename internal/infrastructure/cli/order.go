package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Order blouses from a saved list of matches",
	Long: `Places an order for products listed in a results file, as written by
'fashionous match -o json' or 'fashionous ask -o json'. Use --from - to read
the list from stdin and --design-id to order only some of the products.`,
	Example: `  fashionous match --fabric silk -o json > matches.json
  fashionous order --from matches.json --design-id D-17 \
    --name "Asha Rao" --phone 9876543210 --address "12 MG Road, Pune"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output")
		from, _ := cmd.Flags().GetString("from")
		ids, _ := cmd.Flags().GetStringSlice("design-id")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		address, _ := cmd.Flags().GetString("address")

		results, err := readResults(cmd.InOrStdin(), from)
		if err != nil {
			return NewCLIError("could not read the results file",
				"Save matches with 'fashionous match -o json > matches.json'", err)
		}
		products, err := chooseProducts(results, ids)
		if err != nil {
			return NewCLIError(err.Error(), "Pick design IDs listed by 'fashionous match'", nil)
		}

		services, err := loadServices()
		if err != nil {
			return err
		}

		reply, err := services.Catalog.PlaceOrder(cmd.Context(), catalog.OrderRequest{
			Name:     strings.TrimSpace(name),
			Phone:    strings.TrimSpace(phone),
			Address:  strings.TrimSpace(address),
			Products: products,
		})
		if err != nil {
			return MapError(fmt.Errorf("failed to place order: %w", err))
		}
		logger.Info("order submitted", "products", len(products), "success", reply.Success)

		if outputFormat == "json" {
			data, _ := json.MarshalIndent(reply, "", "  ")
			fmt.Println(string(data))
		} else if reply.Success {
			fmt.Println(reply.Message)
		}
		if !reply.Success {
			return NewCLIError(orRejected(reply.Message), "Provide --name, --phone and --address", nil)
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().String("from", "", "results file from 'match -o json' (- for stdin)")
	orderCmd.Flags().StringSlice("design-id", nil, "design ID to order (repeatable, default all)")
	orderCmd.Flags().String("name", "", "buyer name")
	orderCmd.Flags().String("phone", "", "buyer phone number")
	orderCmd.Flags().String("address", "", "delivery address")
	orderCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	_ = orderCmd.MarkFlagRequired("from")
	RootCmd.AddCommand(orderCmd)
}

// readResults accepts either a bare suggestion list or an object with a
// results field, so both match and ask output can be fed back in.
func readResults(stdin io.Reader, from string) ([]questionnaire.Suggestion, error) {
	var (
		data []byte
		err  error
	)
	if from == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(from)
	}
	if err != nil {
		return nil, err
	}

	var list []questionnaire.Suggestion
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Results []questionnaire.Suggestion `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", from, err)
	}
	return wrapped.Results, nil
}

func chooseProducts(results []questionnaire.Suggestion, ids []string) ([]questionnaire.Suggestion, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no products to order")
	}
	if len(ids) == 0 {
		return results, nil
	}

	byID := make(map[string]questionnaire.Suggestion, len(results))
	for _, s := range results {
		byID[s.DesignID] = s
	}
	chosen := make([]questionnaire.Suggestion, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[strings.TrimSpace(id)]
		if !ok {
			return nil, fmt.Errorf("design %q is not in the results", id)
		}
		chosen = append(chosen, s)
	}
	return chosen, nil
}

func orRejected(msg string) string {
	if msg == "" {
		return "order was rejected"
	}
	return msg
}
