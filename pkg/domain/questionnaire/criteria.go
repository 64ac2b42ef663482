package questionnaire

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SkippedValue is the answer log value recorded for a skipped step.
const SkippedValue = "Skipped"

// Criteria maps a step key to the chosen option. An empty value means the
// step was skipped.
type Criteria map[string]string

// Clone returns an independent copy.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Normalized returns a copy with every value lower-cased and trimmed, the
// form the matching backend compares against.
func (c Criteria) Normalized() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Answer is one entry of the display-oriented answer log.
type Answer struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DisplayValue is the humanized value shown in summaries.
func (a Answer) DisplayValue() string {
	return Humanize(a.Value)
}

// Suggestion is a product returned by the matching backend.
type Suggestion struct {
	Title         string     `json:"title"`
	DesignID      string     `json:"design_id"`
	PriceINR      *float64   `json:"price_inr,omitempty"`
	Fabric        StringList `json:"fabric"`
	Neckline      string     `json:"neckline"`
	Sleeve        string     `json:"sleeve"`
	OccasionTags  []string   `json:"occasion_tags"`
	FrontImageURL string     `json:"front_image_url,omitempty"`
}

// StringList decodes either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("fabric must be a string or a list of strings: %w", err)
	}
	*l = many
	return nil
}

// String joins the values the way suggestion cards display them.
func (l StringList) String() string {
	return strings.Join(l, ", ")
}
