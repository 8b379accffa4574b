package plan

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"

	"xmlbind-generator/internal/model"
)

// Signals for compilation events.
var (
	SignalCompileStart    = capitan.NewSignal("xmlbind.compile.start", "Model compilation beginning")
	SignalCompileComplete = capitan.NewSignal("xmlbind.compile.complete", "Model compilation finished")
	SignalTypeCompiled    = capitan.NewSignal("xmlbind.type.compiled", "Adapter plan compiled")
	SignalTypeFailed      = capitan.NewSignal("xmlbind.type.failed", "Adapter plan compilation failed")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyTypeCount   = capitan.NewIntKey("type_count")
	KeyFailedCount = capitan.NewIntKey("failed_count")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

func emitCompileStart(ctx context.Context, types int) {
	capitan.Emit(ctx, SignalCompileStart, KeyTypeCount.Field(types))
}

func emitCompileComplete(ctx context.Context, compiled, failed int, duration time.Duration) {
	fields := []capitan.Field{
		KeyTypeCount.Field(compiled),
		KeyFailedCount.Field(failed),
		KeyDuration.Field(duration),
	}
	if failed > 0 {
		capitan.Error(ctx, SignalCompileComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCompileComplete, fields...)
	}
}

func emitTypeCompiled(ctx context.Context, id model.TypeID, duration time.Duration) {
	capitan.Emit(ctx, SignalTypeCompiled,
		KeyTypeName.Field(id.String()),
		KeyDuration.Field(duration),
	)
}

func emitTypeFailed(ctx context.Context, id model.TypeID, err error) {
	capitan.Error(ctx, SignalTypeFailed,
		KeyTypeName.Field(id.String()),
		KeyError.Field(err),
	)
}
