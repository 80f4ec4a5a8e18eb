package logging

import (
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceContextKey = "serviceContext"
	sourceLocationKey = "logging.googleapis.com/sourceLocation"
	contextKey        = "context"
)

type serviceContext struct {
	Name    string `json:"service"`
	Version string `json:"version"`
}

// ServiceContext Stackdriver logging serviceContext Field
func ServiceContext(name, version string) zap.Field {
	return zap.Object(serviceContextKey, &serviceContext{Name: name, Version: version})
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (sc serviceContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("service", sc.Name)
	enc.AddString("version", sc.Version)
	return nil
}

// callerLocation 呼び出し元の位置
type callerLocation struct {
	File     string
	Line     string
	Function string
}

func newCallerLocation(pc uintptr, file string, line int, ok bool) *callerLocation {
	if !ok {
		return nil
	}
	l := &callerLocation{File: file, Line: strconv.Itoa(line)}
	if fn := runtime.FuncForPC(pc); fn != nil {
		l.Function = fn.Name()
	}
	return l
}

type sourceLocation callerLocation

// SourceLocation Stackdriver logging sourceLocation Field
func SourceLocation(pc uintptr, file string, line int, ok bool) zap.Field {
	l := newCallerLocation(pc, file, line, ok)
	if l == nil {
		return zap.Skip()
	}
	return zap.Object(sourceLocationKey, (*sourceLocation)(l))
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (l *sourceLocation) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("file", l.File)
	enc.AddString("line", l.Line)
	enc.AddString("function", l.Function)
	return nil
}

type reportContext struct {
	ReportLocation *callerLocation
}

// ErrorReport Stackdriver Error Reporting用のcontext Field
func ErrorReport(pc uintptr, file string, line int, ok bool) zap.Field {
	l := newCallerLocation(pc, file, line, ok)
	if l == nil {
		return zap.Skip()
	}
	return zap.Object(contextKey, &reportContext{ReportLocation: l})
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (c *reportContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddObject("reportLocation", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("filePath", c.ReportLocation.File)
		enc.AddString("lineNumber", c.ReportLocation.Line)
		enc.AddString("functionName", c.ReportLocation.Function)
		return nil
	}))
}
