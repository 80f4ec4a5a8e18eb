package logging

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestServiceContext(t *testing.T) {
	t.Parallel()

	sc := ServiceContext("tracker", "v1.2.3.abcdef").Interface.(*serviceContext)
	assert.Equal(t, "tracker", sc.Name)
	assert.Equal(t, "v1.2.3.abcdef", sc.Version)

	enc := zapcore.NewMapObjectEncoder()
	if assert.NoError(t, sc.MarshalLogObject(enc)) {
		assert.EqualValues(t, "tracker", enc.Fields["service"])
		assert.EqualValues(t, "v1.2.3.abcdef", enc.Fields["version"])
	}
}

func TestSourceLocation(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newCallerLocation(0, "", 0, false))
	assert.Equal(t, zapcore.SkipType, SourceLocation(0, "", 0, false).Type)

	sl := SourceLocation(runtime.Caller(0)).Interface.(*sourceLocation)
	assert.Contains(t, sl.File, "logging/stackdriver_test.go")
	assert.NotEmpty(t, sl.Line)
	assert.Equal(t, "github.com/ventas-crm/tracker/logging.TestSourceLocation", sl.Function)

	enc := zapcore.NewMapObjectEncoder()
	if assert.NoError(t, sl.MarshalLogObject(enc)) {
		assert.EqualValues(t, sl.File, enc.Fields["file"])
		assert.EqualValues(t, sl.Line, enc.Fields["line"])
		assert.EqualValues(t, sl.Function, enc.Fields["function"])
	}
}

func TestErrorReport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.SkipType, ErrorReport(0, "", 0, false).Type)

	c := ErrorReport(runtime.Caller(0)).Interface.(*reportContext)
	assert.Contains(t, c.ReportLocation.File, "logging/stackdriver_test.go")
	assert.Equal(t, "github.com/ventas-crm/tracker/logging.TestErrorReport", c.ReportLocation.Function)

	enc := zapcore.NewMapObjectEncoder()
	if assert.NoError(t, c.MarshalLogObject(enc)) {
		loc := enc.Fields["reportLocation"].(map[string]interface{})
		assert.EqualValues(t, c.ReportLocation.File, loc["filePath"])
		assert.EqualValues(t, c.ReportLocation.Line, loc["lineNumber"])
		assert.EqualValues(t, c.ReportLocation.Function, loc["functionName"])
	}
}
