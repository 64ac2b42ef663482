package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
)

func TestOptionsCommand(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	server, _ := backend(t)
	writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "options", "--output", "text")
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	for _, want := range []string{
		"1. What fabric do you prefer? (fabric)",
		"Raw Silk",
		"(no options)",
		"Sleeveless",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatchCommandPostsNormalizedCriteria(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	server, body := backend(t)
	writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "match", "--output", "text", "--fabric", " Silk ", "--occasion", "", "--neckline", "", "--sleeve", "")
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	var posted struct {
		Criteria map[string]string `json:"criteria"`
	}
	if err := json.Unmarshal(body(), &posted); err != nil {
		t.Fatalf("decode posted body: %v", err)
	}
	if posted.Criteria["fabric"] != "silk" {
		t.Fatalf("expected normalized fabric, got %q", posted.Criteria["fabric"])
	}
	if v, ok := posted.Criteria["sleeve"]; !ok || v != "" {
		t.Fatalf("expected skipped sleeve to be posted empty, got %q (present=%v)", v, ok)
	}

	for _, want := range []string{"Silk Wedding Blouse", "₹1299", "Neckline: v_neck | Sleeve: N/A", "Occasion: wedding"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAskCommandEmptyResults(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	server, _ := backend(t)
	writeConfig(t, dir, server.URL)

	out, err := runCLI(t, "ask", "--output", "text", "red", "silk", "blouse")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if !strings.Contains(out, "Found 0 blouses") || !strings.Contains(out, "Sorry, no products found in our database.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCatalogUnreachable(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	server, _ := backend(t)
	url := server.URL
	server.Close()
	writeConfig(t, dir, url)

	if _, err := runCLI(t, "options", "--output", "text"); err == nil {
		t.Fatal("expected error for unreachable catalog")
	}
}

func TestConfigInit(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	if _, err := runCLI(t, "config", "init", "--force=false"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	path := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}

	if _, err := runCLI(t, "config", "init", "--force=false"); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	writeConfig(t, dir, "http://catalog.test:8080")
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "base_url:     http://catalog.test:8080") || !strings.Contains(out, "back_policy:  retain") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestStartCommandSkipsTUI(t *testing.T) {
	_, cleanup := withTempDir(t)
	defer cleanup()

	t.Setenv("FASHIONOUS_SKIP_TUI_RUN", "true")
	if _, err := runCLI(t, "start"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	dir, cleanup := withTempDir(t)
	defer cleanup()

	cfg := config.Default()
	cfg.BackPolicy = "sideways"
	if err := config.Save(filepath.Join(dir, config.DefaultFile), cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if _, err := runCLI(t, "start"); err == nil {
		t.Fatal("expected error for invalid back_policy")
	}
}
