package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorCombinesMessages(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddError(CodeDuplicateName, `duplicate attribute "id"`, "feed.Item", "item")
	d.AddWarning(CodeUnsupportedTag, "ignored", "feed.Item", "")
	d.AddError(CodeNotASubtype, "Cat is not a Dog", "zoo.Pen", "")

	require.True(t, d.HasErrors())
	assert.True(t, d.HasCode(CodeNotASubtype))
	assert.False(t, d.HasCode(CodeEmptyMatchers))
	assert.Len(t, d.ForType("feed.Item"), 1)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[feed.Item] item: [DUPLICATE_NAME] duplicate attribute "id"; [zoo.Pen]: [NOT_A_SUBTYPE] Cat is not a Dog`,
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("X", "info", "", "")
	b.AddError("Y", "boom", "", "")
	b.AddWarning("Z", "careful", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, "[Y] boom", a.Errors[0].String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
