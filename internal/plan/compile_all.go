package plan

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/model"
)

// Result is the outcome of compiling a whole model.
type Result struct {
	// Plans holds the successfully compiled plans in declaration order.
	Plans []*ir.AdapterPlan
	// Failed lists the types that did not compile, in declaration order.
	Failed []*TypeError
	// Compiler gives access to the linked model and its diagnostics.
	Compiler *Compiler
}

// Err joins the errors of every failed type, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}

	return errors.Join(errs...)
}

// Plan returns the plan compiled for id.
func (r *Result) Plan(id model.TypeID) (*ir.AdapterPlan, bool) {
	for _, p := range r.Plans {
		if p.Type == id {
			return p, true
		}
	}

	return nil, false
}

// CompileAll compiles every declared type of m in parallel. Each type gets its own
// Context; a failing type is reported in Result.Failed without affecting the others.
// The returned error is non-nil only when the model itself cannot be prepared or ctx
// is cancelled.
func CompileAll(ctx context.Context, m *model.Model, h model.Hierarchy, opts Options) (*Result, error) {
	start := time.Now()

	c, err := NewCompiler(m, h, opts)
	if err != nil {
		return nil, err
	}

	ids := m.TypeIDs()
	emitCompileStart(ctx, len(ids))

	plans := make([]*ir.AdapterPlan, len(ids))
	failures := make([]*TypeError, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			typeStart := time.Now()

			p, err := c.CompileType(id)
			if err != nil {
				failures[i] = &TypeError{Type: id, Err: err}

				emitTypeFailed(gctx, id, err)

				return nil
			}

			plans[i] = p
			emitTypeCompiled(gctx, id, time.Since(typeStart))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Compiler: c}

	for i := range ids {
		if plans[i] != nil {
			res.Plans = append(res.Plans, plans[i])
		}

		if failures[i] != nil {
			res.Failed = append(res.Failed, failures[i])
		}
	}

	emitCompileComplete(ctx, len(res.Plans), len(res.Failed), time.Since(start))

	return res, nil
}
