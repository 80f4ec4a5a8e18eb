package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type core struct {
	zapcore.Core
	service serviceContext
}

func wrapCore(c zapcore.Core, name, version string) zapcore.Core {
	return &core{
		Core:    c,
		service: serviceContext{Name: name, Version: version},
	}
}

// With adds structured context to the Core.
func (c *core) With(fields []zap.Field) zapcore.Core {
	return &core{
		Core:    c.Core.With(fields),
		service: c.service,
	}
}

// Check determines whether the supplied Entry should be logged.
func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write adds the Stackdriver specific fields and writes the entry.
func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if ent.Caller.Defined && !hasField(fields, sourceLocationKey) {
		fields = append(fields, SourceLocation(ent.Caller.PC, ent.Caller.File, ent.Caller.Line, true))
	}
	if !hasField(fields, serviceContextKey) {
		fields = append(fields, zap.Object(serviceContextKey, &c.service))
	}
	if zapcore.ErrorLevel.Enabled(ent.Level) && ent.Caller.Defined && !hasField(fields, contextKey) {
		fields = append(fields, ErrorReport(ent.Caller.PC, ent.Caller.File, ent.Caller.Line, true))
	}
	return c.Core.Write(ent, fields)
}

func hasField(fields []zapcore.Field, key string) bool {
	for i := range fields {
		if fields[i].Key == key {
			return true
		}
	}
	return false
}
