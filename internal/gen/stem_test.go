package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

func TestStems(t *testing.T) {
	st := newStems("v1", "raw0")

	assert.Equal(t, "v0", st.next("v"))
	assert.Equal(t, "v2", st.next("v"))
	assert.Equal(t, "raw1", st.next("raw"))
	assert.Equal(t, "s0", st.next("s"))
	assert.Equal(t, "v3", st.next("v"))
}

func TestUniqueSkipsImportAliases(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())
	f := g.newFile(&ir.AdapterPlan{
		Type: model.TypeID{PkgPath: "example/v0", Name: "Box"},
	})

	assert.Equal(t, "v1", f.unique("v"))
	assert.Equal(t, "s0", f.unique("s"))
}
