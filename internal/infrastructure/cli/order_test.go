package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

const savedMatches = `[
  {"title":"Silk Wedding Blouse","design_id":"D-17","price_inr":1299,"fabric":["silk"],"occasion_tags":["wedding"]},
  {"title":"Cotton Daywear Blouse","design_id":"D-21","price_inr":799,"fabric":"cotton","occasion_tags":[]}
]`

func resetDesignIDs(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		f := orderCmd.Flags().Lookup("design-id")
		_ = f.Value.(interface{ Replace([]string) error }).Replace(nil)
		f.Changed = false
	})
}

func TestOrderCommandPostsChosenProducts(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()
	resetDesignIDs(t)

	server, body := backend(t)
	writeConfig(t, dir, server.URL)
	from := filepath.Join(dir, "matches.json")
	if err := os.WriteFile(from, []byte(savedMatches), 0600); err != nil {
		t.Fatalf("write matches: %v", err)
	}

	out, err := runCLI(t, "order", "--output", "text", "--from", from, "--design-id", "D-17",
		"--name", " Asha Rao ", "--phone", "9876543210", "--address", "12 MG Road, Pune")
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}
	if !strings.Contains(out, "Order placed for 1 product(s)! Total: ₹1299") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	var posted catalog.OrderRequest
	if err := json.Unmarshal(body(), &posted); err != nil {
		t.Fatalf("decode posted body: %v", err)
	}
	if posted.Name != "Asha Rao" {
		t.Fatalf("expected trimmed name, got %q", posted.Name)
	}
	if len(posted.Products) != 1 || posted.Products[0].DesignID != "D-17" {
		t.Fatalf("unexpected products: %+v", posted.Products)
	}
}

func TestOrderCommandRejected(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	server, _ := backend(t)
	writeConfig(t, dir, server.URL)
	from := filepath.Join(dir, "matches.json")
	if err := os.WriteFile(from, []byte(savedMatches), 0600); err != nil {
		t.Fatalf("write matches: %v", err)
	}

	_, err := runCLI(t, "order", "--output", "text", "--from", from,
		"--name", "Asha", "--phone", "  ", "--address", "12 MG Road, Pune")
	if err == nil {
		t.Fatal("expected error for a rejected order")
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || !strings.Contains(cliErr.Message, "Please provide all required details") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChooseProducts(t *testing.T) {
	results := []questionnaire.Suggestion{{DesignID: "D-17"}, {DesignID: "D-21"}}

	tests := []struct {
		name    string
		results []questionnaire.Suggestion
		ids     []string
		want    []string
		wantErr bool
	}{
		{"all by default", results, nil, []string{"D-17", "D-21"}, false},
		{"chosen in flag order", results, []string{"D-21", " D-17"}, []string{"D-21", "D-17"}, false},
		{"unknown id", results, []string{"D-99"}, nil, true},
		{"nothing to order", nil, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chooseProducts(tt.results, tt.ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d products, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].DesignID != id {
					t.Fatalf("product %d = %s, want %s", i, got[i].DesignID, id)
				}
			}
		})
	}
}

func TestReadResultsAcceptsAskOutput(t *testing.T) {
	got, err := readResults(strings.NewReader(`{"message":"Found 1","results":[{"design_id":"D-5"}]}`), "-")
	if err != nil {
		t.Fatalf("readResults: %v", err)
	}
	if len(got) != 1 || got[0].DesignID != "D-5" {
		t.Fatalf("unexpected results: %+v", got)
	}
}
