package foodai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hanqiu-dev/dietagent/internal/domain"
)

// flexFloat decodes a JSON number that models sometimes emit as null or as an
// annotated string such as "120 kcal" or "约15g". Decoding never fails:
// unusable values degrade to zero. This leniency is field-level only; the
// surrounding document must still be valid JSON.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexFloat(coerceNumber(s))
		return nil
	}
	*f = 0
	return nil
}

// coerceNumber strips every character that is not a digit or decimal point
// and parses the remainder, returning 0 when nothing parseable is left.
func coerceNumber(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// structuredReply mirrors the JSON schema the structuring prompt demands.
type structuredReply struct {
	Food struct {
		Name             string    `json:"name"`
		Category         string    `json:"category"`
		Calories         flexFloat `json:"calories"`
		Protein          flexFloat `json:"protein"`
		Fat              flexFloat `json:"fat"`
		Carbohydrate     flexFloat `json:"carbohydrate"`
		Unit             string    `json:"unit"`
		SuggestedPortion string    `json:"suggestedPortion"`
		Advice           string    `json:"advice"`
	} `json:"food"`
	NutritionAnalysis string `json:"nutritionAnalysis"`
}

// parseStructuredReply decodes the structuring stage's JSON output into a
// FoodRecord. Malformed JSON fails loudly; only individual numeric fields
// are coerced leniently.
func parseStructuredReply(text string) (*domain.FoodRecord, string, error) {
	var reply structuredReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, "", fmt.Errorf("reply is not valid JSON: %w", err)
	}
	record := &domain.FoodRecord{
		Name:             reply.Food.Name,
		Category:         reply.Food.Category,
		Calories:         float64(reply.Food.Calories),
		Protein:          float64(reply.Food.Protein),
		Fat:              float64(reply.Food.Fat),
		Carbohydrate:     float64(reply.Food.Carbohydrate),
		Unit:             reply.Food.Unit,
		SuggestedPortion: reply.Food.SuggestedPortion,
		Advice:           reply.Food.Advice,
	}
	return record, reply.NutritionAnalysis, nil
}
