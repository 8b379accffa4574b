package xmlbind

import (
	"context"
	"fmt"
	"time"
)

// Read reads the root element of a document through the adapter of typeName.
func Read(ctx context.Context, r Reader, cfg *Config, typeName string) (v any, err error) {
	start := time.Now()
	defer func() { emitReadComplete(ctx, typeName, time.Since(start), err) }()

	a, err := cfg.TypeAdapter(typeName)
	if err != nil {
		return nil, err
	}

	if err := r.BeginElement(); err != nil {
		return nil, err
	}

	if _, err := r.NextElementName(); err != nil {
		return nil, err
	}

	v, err = a.FromXML(r, cfg)
	if err != nil {
		return nil, err
	}

	if err := r.EndElement(); err != nil {
		return nil, err
	}

	return v, nil
}

// Decode is Read with the result asserted to T.
func Decode[T any](ctx context.Context, r Reader, cfg *Config, typeName string) (T, error) {
	var zero T

	v, err := Read(ctx, r, cfg, typeName)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("adapter of %s returned %T, want %T", typeName, v, zero)
	}

	return t, nil
}

// Write writes value as a document root through the adapter of typeName.
func Write(ctx context.Context, w Writer, cfg *Config, typeName string, value any) (err error) {
	start := time.Now()
	defer func() { emitWriteComplete(ctx, typeName, time.Since(start), err) }()

	a, err := cfg.TypeAdapter(typeName)
	if err != nil {
		return err
	}

	return a.ToXML(w, cfg, value, "")
}
