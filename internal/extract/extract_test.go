package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"schema-designer-backend/internal/extract"
)

func TestSchema_RoundTrip(t *testing.T) {
	schema, ok := extract.Schema("pre ```json\n{\"a\":1}\n``` post", "json")

	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, schema)
}

func TestSchema_NoFence(t *testing.T) {
	schema, ok := extract.Schema("What collections do you need?", "json")

	assert.False(t, ok)
	assert.Empty(t, schema)
}

func TestSchema_EmptyBodyIsAbsent(t *testing.T) {
	for _, reply := range []string{
		"here:\n```json\n```",
		"here:\n```json\n   \n\t\n```",
		"```json```",
	} {
		schema, ok := extract.Schema(reply, "json")
		assert.False(t, ok, reply)
		assert.Empty(t, schema, reply)
		assert.True(t, extract.HasFence(reply, "json"), reply)
	}
}

func TestSchema_FirstTaggedBlockWins(t *testing.T) {
	reply := "Schema:\n```json\n{\"users\":{}}\n```\nAlternative:\n```json\n{\"orders\":{}}\n```"

	schema, ok := extract.Schema(reply, "json")

	assert.True(t, ok)
	assert.Equal(t, `{"users":{}}`, schema)
}

func TestSchema_EmptyFirstTaggedBlockIsNotSkipped(t *testing.T) {
	reply := "```json\n```\n```json\n{\"a\":1}\n```"

	_, ok := extract.Schema(reply, "json")

	assert.False(t, ok)
}

func TestSchema_IgnoresOtherLanguages(t *testing.T) {
	reply := "Create it with:\n```javascript\ndb.createCollection(\"json\")\n```\nSchema:\n```json\n{\"b\":2}\n```"

	schema, ok := extract.Schema(reply, "json")

	assert.True(t, ok)
	assert.Equal(t, `{"b":2}`, schema)
}

func TestSchema_UntaggedBlockDoesNotLeakIntoTag(t *testing.T) {
	// The closing fence of the first block is followed by "json" text, which must not be read as an opener.
	reply := "```\nplain\n```json is below\n```json\n{\"c\":3}\n```"

	schema, ok := extract.Schema(reply, "json")

	assert.True(t, ok)
	assert.Equal(t, `{"c":3}`, schema)
}

func TestSchema_TagMustMatchExactly(t *testing.T) {
	_, ok := extract.Schema("```jsonc\n{\"a\":1}\n```", "json")
	assert.False(t, ok)

	schema, ok := extract.Schema("```JSON\n{\"a\":1}\n```", "json")
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, schema)
}

func TestSchema_UnclosedFence(t *testing.T) {
	reply := "```json\n{\"a\":1}"

	_, ok := extract.Schema(reply, "json")

	assert.False(t, ok)
	assert.True(t, extract.HasFence(reply, "json"))
}

func TestSchema_SingleLine(t *testing.T) {
	schema, ok := extract.Schema("```json {\"a\":1} ```", "json")

	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, schema)
}

func TestSchema_SQLTag(t *testing.T) {
	reply := "```sql\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n```"

	schema, ok := extract.Schema(reply, "sql")

	assert.True(t, ok)
	assert.Equal(t, "CREATE TABLE users (id SERIAL PRIMARY KEY);", schema)
	assert.False(t, extract.HasFence(reply, "json"))
}
