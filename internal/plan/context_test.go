package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_Unique(t *testing.T) {
	ctx := NewContext()

	assert.Equal(t, "item0", ctx.Unique("item"))
	assert.Equal(t, "item1", ctx.Unique("item"))
	assert.Equal(t, "param0", ctx.Unique("param"))
	assert.Equal(t, "item2", ctx.Unique("item"))

	// A fresh context never continues another one's numbering.
	assert.Equal(t, "item0", NewContext().Unique("item"))
}
