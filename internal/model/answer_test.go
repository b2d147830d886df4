package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	var answers map[string]Answer
	payload := `{
		"2+2": "4",
		"Explain gravity": {"text": "Objects attract due to mass", "is_correct": true},
		"Capital of France": {"selected_option": " Paris "},
		"Skipped": null
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &answers))

	raw := answers["2+2"]
	assert.Equal(t, AnswerRaw, raw.Shape)
	assert.Equal(t, "4", raw.Raw)

	desc := answers["Explain gravity"]
	assert.Equal(t, AnswerStructured, desc.Shape)
	require.NotNil(t, desc.Text)
	assert.Equal(t, "Objects attract due to mass", *desc.Text)
	assert.Nil(t, desc.SelectedOption)

	mcq := answers["Capital of France"]
	require.NotNil(t, mcq.SelectedOption)
	assert.Equal(t, " Paris ", *mcq.SelectedOption)

	assert.False(t, answers["Skipped"].Present())
	assert.False(t, answers["missing"].Present())
}

func TestAnswer_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	for _, payload := range []string{`42`, `true`, `["a"]`} {
		var a Answer
		assert.Error(t, json.Unmarshal([]byte(payload), &a), payload)
	}
}

func TestAnswer_MarshalDropsClientVerdict(t *testing.T) {
	var a Answer
	require.NoError(t, json.Unmarshal([]byte(`{"text":"x","is_correct":true}`), &a))

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"x","selected_option":null}`, string(out))
}
