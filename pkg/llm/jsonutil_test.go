package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestDecodeJSONBlockBare(t *testing.T) {
	var p payload
	err := DecodeJSONBlock(`{"name": "demo", "score": 0.5}`, &p)

	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, 0.5, p.Score)
}

func TestDecodeJSONBlockJSONFence(t *testing.T) {
	response := "Here you go:\n```json\n{\"name\": \"fenced\"}\n```\nLet me know if you need more."

	var p payload
	err := DecodeJSONBlock(response, &p)

	require.NoError(t, err)
	assert.Equal(t, "fenced", p.Name)
}

func TestDecodeJSONBlockGenericFence(t *testing.T) {
	response := "```\n{\"name\": \"plain fence\"}\n```"

	var p payload
	err := DecodeJSONBlock(response, &p)

	require.NoError(t, err)
	assert.Equal(t, "plain fence", p.Name)
}

func TestDecodeJSONBlockNoJSON(t *testing.T) {
	var p payload
	err := DecodeJSONBlock("I am unable to produce structured output here.", &p)

	assert.Error(t, err)
}

func TestDecodeJSONBlockSurroundingProse(t *testing.T) {
	response := "Sure! ```json\n{\"name\": \"prose\", \"score\": 1}\n``` hope that helps"

	var p payload
	err := DecodeJSONBlock(response, &p)

	require.NoError(t, err)
	assert.Equal(t, "prose", p.Name)
}
