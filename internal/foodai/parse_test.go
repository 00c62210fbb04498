package foodai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"annotated kcal", "120kcal", 120},
		{"annotated with space", "120 kcal", 120},
		{"cjk annotation", "约15g", 15},
		{"decimal", "2.6g", 2.6},
		{"plain number string", "45.5", 45.5},
		{"no digits", "abc", 0},
		{"empty", "", 0},
		{"only punctuation", "...", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceNumber(tt.input))
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"number", `45.5`, 45.5},
		{"integer", `130`, 130},
		{"null", `null`, 0},
		{"string with unit", `"120 kcal"`, 120},
		{"string without digits", `"abc"`, 0},
		{"unexpected object degrades to zero", `{"v":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.expected, float64(f))
		})
	}
}

func TestParseStructuredReply(t *testing.T) {
	text := `{
		"food": {
			"name": "米饭",
			"category": "主食",
			"calories": 130,
			"protein": "2.6g",
			"fat": 0.3,
			"carbohydrate": 28,
			"unit": "碗",
			"suggestedPortion": "1碗",
			"advice": "适量"
		},
		"nutritionAnalysis": "米饭是常见主食……"
	}`

	record, analysis, err := parseStructuredReply(text)
	require.NoError(t, err)

	assert.Equal(t, "米饭", record.Name)
	assert.Equal(t, "主食", record.Category)
	assert.Equal(t, 130.0, record.Calories)
	assert.Equal(t, 2.6, record.Protein)
	assert.Equal(t, 0.3, record.Fat)
	assert.Equal(t, 28.0, record.Carbohydrate)
	assert.Equal(t, "碗", record.Unit)
	assert.Equal(t, "1碗", record.SuggestedPortion)
	assert.Equal(t, "适量", record.Advice)
	assert.Equal(t, "米饭是常见主食……", analysis)
}

func TestParseStructuredReplyNullNutrients(t *testing.T) {
	text := `{"food":{"name":"水","calories":null,"protein":null,"fat":null,"carbohydrate":null},"nutritionAnalysis":""}`

	record, _, err := parseStructuredReply(text)
	require.NoError(t, err)
	assert.Zero(t, record.Calories)
	assert.Zero(t, record.Protein)
	assert.Zero(t, record.Fat)
	assert.Zero(t, record.Carbohydrate)
}

func TestParseStructuredReplyMalformedJSONFailsLoudly(t *testing.T) {
	_, _, err := parseStructuredReply("not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}
