package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Name string `json:"name"`
}

func TestExtractJSON_Direct(t *testing.T) {
	var p probe
	require.NoError(t, ExtractJSON(`{"name":"a"}`, &p))
	assert.Equal(t, "a", p.Name)
}

func TestExtractJSON_MarkdownFenced(t *testing.T) {
	var p probe
	raw := "```json\n{\"name\":\"fenced\"}\n```"
	require.NoError(t, ExtractJSON(raw, &p))
	assert.Equal(t, "fenced", p.Name)
}

func TestExtractJSON_EmbeddedInProse(t *testing.T) {
	var p probe
	raw := `Sure! Here is the result you asked for: {"name":"embedded"} — let me know if you need more.`
	require.NoError(t, ExtractJSON(raw, &p))
	assert.Equal(t, "embedded", p.Name)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	var p probe
	raw := `prefix {"name":"has } and { inside"} suffix`
	require.NoError(t, ExtractJSON(raw, &p))
	assert.Equal(t, "has } and { inside", p.Name)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	var p probe
	err := ExtractJSON("no structured payload here", &p)
	var ime *InvalidModelOutputError
	require.ErrorAs(t, err, &ime)
	assert.Equal(t, "no structured payload here", ime.Raw)
}

func TestFindJSONCandidates_Nested(t *testing.T) {
	raw := `a {"x":{"y":1}} b {"z":2}`
	got := findJSONCandidates(raw)
	require.Len(t, got, 2)
	assert.Equal(t, `{"x":{"y":1}}`, got[0])
	assert.Equal(t, `{"z":2}`, got[1])
}

func TestFindJSONCandidates_EscapedQuotes(t *testing.T) {
	raw := `{"s":"quote \" and brace }"}`
	got := findJSONCandidates(raw)
	require.Len(t, got, 1)
	assert.Equal(t, raw, got[0])
}
