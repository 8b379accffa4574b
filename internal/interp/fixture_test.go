package interp_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xmlbind-generator/internal/interp"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/plan"
	"xmlbind-generator/xmlbind"
	"xmlbind-generator/xmlio"
)

func str() model.ValueType { return model.ValueType{ID: model.Builtin("string")} }

func integer() model.ValueType { return model.ValueType{ID: model.Builtin("int")} }

func optional(id model.TypeID) model.ValueType { return model.ValueType{ID: id, Optional: true} }

var yesNo = xmlbind.ConverterOf(
	func(s string) (bool, error) {
		switch s {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		default:
			return false, errors.New("expected yes or no")
		}
	},
	func(b bool) (string, error) {
		if b {
			return "yes", nil
		}

		return "no", nil
	},
)

// install compiles every type of b and installs the adapters into a fresh config.
func install(t *testing.T, reg *interp.Registry, b *model.Builder, opts plan.Options, cfgOpts ...xmlbind.Option) *xmlbind.Config {
	t.Helper()

	res, err := plan.CompileAll(context.Background(), b.Build(), reg, opts)
	require.NoError(t, err)
	require.NoError(t, res.Err())

	cfg := xmlbind.NewConfig(cfgOpts...)
	require.NoError(t, reg.Install(cfg, res.Plans))

	return cfg
}

func decode[T any](cfg *xmlbind.Config, id model.TypeID, doc string) (T, error) {
	r := xmlio.NewReader(strings.NewReader(doc))
	return xmlbind.Decode[T](context.Background(), r, cfg, id.String())
}

func encode(cfg *xmlbind.Config, id model.TypeID, v any) (string, error) {
	var sb strings.Builder

	w := xmlio.NewWriter(&sb)
	if err := xmlbind.Write(context.Background(), w, cfg, id.String(), v); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
