package xmlbind

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for runtime events.
var (
	SignalReadComplete  = capitan.NewSignal("xmlbind.read.complete", "Document read finished")
	SignalWriteComplete = capitan.NewSignal("xmlbind.write.complete", "Document write finished")
)

// Keys for typed event data.
var (
	KeyTypeName = capitan.NewStringKey("type_name")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitReadComplete emits an event when a document read finishes.
func emitReadComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalReadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalReadComplete, fields...)
	}
}

// emitWriteComplete emits an event when a document write finishes.
func emitWriteComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalWriteComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalWriteComplete, fields...)
	}
}
