package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	"github.com/felixgeelhaar/fashionous/pkg/catalog"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return buf.String()
}

func withTempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "fashionous-cli-test-*")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	return dir, func() {
		_ = os.Chdir(old)
		_ = os.RemoveAll(dir)
	}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, logFile, verbose = "", "", false
	var err error
	out := captureStdout(t, func() {
		RootCmd.SetArgs(args)
		err = RootCmd.Execute()
	})
	return out, err
}

// backend serves the catalog endpoints. The returned func reports the last
// body posted to the match or order endpoint.
func backend(t *testing.T) (*httptest.Server, func() []byte) {
	t.Helper()

	var (
		mu       sync.Mutex
		lastBody []byte
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/questionnaire_options", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fabric":["cotton","raw_silk"],"occasion":["wedding"],"neckline":[],"sleeve":["sleeveless"]}`))
	})
	mux.HandleFunc("/api/questionnaire", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		mu.Lock()
		lastBody = buf.Bytes()
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"Silk Wedding Blouse","design_id":"D-17","price_inr":1299,"fabric":["silk"],"neckline":"v_neck","sleeve":"","occasion_tags":["wedding"]}]}`))
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Found 0 blouses","results":[]}`))
	})
	mux.HandleFunc("/api/place_order", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		mu.Lock()
		lastBody = buf.Bytes()
		mu.Unlock()

		var order catalog.OrderRequest
		_ = json.Unmarshal(buf.Bytes(), &order)
		w.Header().Set("Content-Type", "application/json")
		if order.Name == "" || order.Phone == "" || order.Address == "" || len(order.Products) == 0 {
			_, _ = w.Write([]byte(`{"success":false,"message":"Please provide all required details and at least one product."}`))
			return
		}
		total := 0
		for _, p := range order.Products {
			if p.PriceINR != nil {
				total += int(*p.PriceINR)
			}
		}
		_ = json.NewEncoder(w).Encode(catalog.OrderReply{
			Success:     true,
			Message:     fmt.Sprintf("Order placed for %d product(s)! Total: ₹%d", len(order.Products), total),
			TotalAmount: total,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, func() []byte {
		mu.Lock()
		defer mu.Unlock()
		return lastBody
	}
}

// writeConfig points a fashionous.yaml in dir at baseURL.
func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()

	cfg := config.Default()
	cfg.BaseURL = baseURL
	path := filepath.Join(dir, config.DefaultFile)
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}
