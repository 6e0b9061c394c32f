package llmutils_test

import (
	"testing"

	"github.com/effective-security/toolhost/pkg/llmutils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	llmOutput := "\n```json\n\n{\"query\": \"total sales\", \"region\": \"EU\"}\n\n```\n\n"
	clean := llmutils.CleanJSON([]byte(llmOutput))

	expected := "{\"query\": \"total sales\", \"region\": \"EU\"}"
	assert.Equal(t, expected, string(clean))

	llmOutput = "Here you go:\n```json\n\n[{\"query\": \"total sales\"}]\n```\n\n"
	clean = llmutils.CleanJSON([]byte(llmOutput))
	assert.Equal(t, "[{\"query\": \"total sales\"}]", string(clean))

	assert.Equal(t, "plain text", string(llmutils.CleanJSON([]byte("plain text"))))
}

func Test_TrimBackticks(t *testing.T) {
	expected := "{\"query\": \"q4 revenue\"}"

	assert.Equal(t, expected, llmutils.TrimBackticks("\n```json\n\n{\"query\": \"q4 revenue\"}\n\n```\n\n"))
	assert.Equal(t, expected, llmutils.TrimBackticks(expected))
	assert.Equal(t, expected, llmutils.TrimBackticks("\n```\n\n{\"query\": \"q4 revenue\"}\n\n```\n\n"))
	assert.Equal(t, expected, llmutils.TrimBackticks("\n```{\"query\": \"q4 revenue\"}\n\n```\n\n"))
}

func Test_BackticksJSON(t *testing.T) {
	wrapped := llmutils.BackticksJSON("{\"query\": \"q4 revenue\"}\n")
	assert.Equal(t, "\n```json\n{\"query\": \"q4 revenue\"}\n```\n", wrapped)
}

func Test_ToJSON(t *testing.T) {
	v := map[string]string{"query": "total"}
	assert.Equal(t, `{"query":"total"}`, llmutils.ToJSON(v))
	assert.Equal(t, "{\n\t\"query\": \"total\"\n}", llmutils.ToJSONIndent(v))
}
