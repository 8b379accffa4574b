package gen

import (
	"fmt"
	"strings"
)

// holderStruct generates the struct collecting the constructor arguments of a
// constructed type, one member per temporary.
func (f *file) holderStruct(name string) string {
	var sb strings.Builder

	if f.g.config.GenerateComments {
		sb.WriteString(fmt.Sprintf("// %s collects the constructor arguments of %s.\n", name, f.plan.Type.Name))
	}

	sb.WriteString(fmt.Sprintf("type %s struct {\n", name))

	for _, t := range f.plan.Temps {
		sb.WriteString(fmt.Sprintf("\t%s %s\n", t.Name, f.tempType(t)))
	}

	sb.WriteString("}\n")

	return sb.String()
}
