package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	params := NewBuilder(42).
		WithPlainText("user.name@example.com (v1)").
		ReplyTo(7).
		Build()

	assert.Equal(t, int64(42), params.ChatID)
	assert.Equal(t, "MarkdownV2", params.ParseMode)
	assert.Equal(t, 7, params.ReplyToMessageID)
	assert.Equal(t, `user\.name@example\.com \(v1\)`, params.Text)
}

func TestBuilder_PlainParseMode(t *testing.T) {
	params := NewBuilder(1).WithParseMode("").WithPlainText("a.b").Build()
	assert.Equal(t, "a.b", params.Text)
}
