package questionnaire

import (
	"encoding/json"
	"testing"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v_neck", "V Neck"},
		{"cotton", "Cotton"},
		{"full_sleeve", "Full Sleeve"},
		{"off-shoulder", "Off-Shoulder"},
		{"3/4_sleeve", "3/4 Sleeve"},
		{"V Neck", "V Neck"},
		{"mIxed_case", "MIxed Case"},
		{"naïve_print", "Naïve Print"},
		{"ärmellos", "Ärmellos"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Humanize(tt.in); got != tt.want {
				t.Fatalf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Humanize(tt.want); again != tt.want {
				t.Fatalf("Humanize not idempotent: %q -> %q", tt.want, again)
			}
		})
	}
}

func TestCriteriaNormalized(t *testing.T) {
	c := Criteria{KeyFabric: "  Silk ", KeySleeve: ""}
	n := c.Normalized()
	if n[KeyFabric] != "silk" || n[KeySleeve] != "" {
		t.Fatalf("unexpected normalized criteria: %#v", n)
	}
	if c[KeyFabric] != "  Silk " {
		t.Fatal("Normalized must not modify the receiver")
	}
}

func TestSuggestionDecode(t *testing.T) {
	payload := `[
		{"title":"A","design_id":"D1","price_inr":1299,"fabric":"silk","neckline":"v_neck","sleeve":"sleeveless","occasion_tags":["wedding"],"front_image_url":"http://img/a.jpg"},
		{"title":"B","design_id":"D2","fabric":["cotton","linen"],"occasion_tags":[]}
	]`

	var got []Suggestion
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0].PriceINR == nil || *got[0].PriceINR != 1299 {
		t.Fatalf("unexpected price: %v", got[0].PriceINR)
	}
	if got[0].Fabric.String() != "silk" {
		t.Fatalf("fabric = %q", got[0].Fabric.String())
	}
	if got[1].PriceINR != nil {
		t.Fatalf("expected missing price, got %v", *got[1].PriceINR)
	}
	if got[1].Fabric.String() != "cotton, linen" {
		t.Fatalf("fabric list = %q", got[1].Fabric.String())
	}
}

func TestStringListRejectsNumbers(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Fatal("expected error for numeric fabric")
	}
}
