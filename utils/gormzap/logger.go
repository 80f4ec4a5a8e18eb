// Package gormzap gormのログをzapに流すアダプタ
package gormzap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const defaultSlowThreshold = 200 * time.Millisecond

// Logger gorm logger.Interface のzap実装
type Logger struct {
	l                    *zap.Logger
	slowThreshold        time.Duration
	parameterizedQueries bool
}

var (
	_ logger.Interface  = (*Logger)(nil)
	_ gorm.ParamsFilter = (*Logger)(nil)
)

// Option Loggerのオプション
type Option func(l *Logger)

// WithSlowThreshold この時間を超えたクエリをWARNで記録します. 0で無効
func WithSlowThreshold(d time.Duration) Option {
	return func(l *Logger) {
		l.slowThreshold = d
	}
}

// WithParameterizedQueries trueの場合, クエリパラメータをログに含めません
func WithParameterizedQueries(enabled bool) Option {
	return func(l *Logger) {
		l.parameterizedQueries = enabled
	}
}

// New zap.Loggerに出力するLoggerを生成します
func New(zl *zap.Logger, options ...Option) *Logger {
	l := &Logger{l: zl, slowThreshold: defaultSlowThreshold}
	for _, o := range options {
		o(l)
	}
	return l
}

// LogMode implements logger.Interface
func (gl Logger) LogMode(level logger.LogLevel) logger.Interface {
	var zapLevel zapcore.Level
	switch level {
	case logger.Silent:
		zapLevel = zap.DPanicLevel
	case logger.Error:
		zapLevel = zap.ErrorLevel
	case logger.Warn:
		zapLevel = zap.WarnLevel
	case logger.Info:
		zapLevel = zap.InfoLevel
	default:
		return &gl
	}
	gl.l = gl.l.WithOptions(zap.IncreaseLevel(zapLevel))
	return &gl
}

// Info implements logger.Interface
func (gl *Logger) Info(_ context.Context, s string, i ...interface{}) {
	gl.l.Info(fmt.Sprintf(s, i...))
}

// Warn implements logger.Interface
func (gl *Logger) Warn(_ context.Context, s string, i ...interface{}) {
	gl.l.Warn(fmt.Sprintf(s, i...))
}

// Error implements logger.Interface
func (gl *Logger) Error(_ context.Context, s string, i ...interface{}) {
	gl.l.Error(fmt.Sprintf(s, i...))
}

// Trace implements logger.Interface
func (gl *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("latency", elapsed),
	}
	if rows != -1 {
		fields = append(fields, zap.Int64("rows", rows))
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		gl.l.Error(sql, append(fields, zap.Error(err))...)
	case gl.slowThreshold > 0 && elapsed > gl.slowThreshold:
		gl.l.Warn(sql, append(fields, zap.Duration("threshold", gl.slowThreshold))...)
	default:
		gl.l.Debug(sql, fields...)
	}
}

// ParamsFilter implements gorm.ParamsFilter
func (gl *Logger) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if gl.parameterizedQueries {
		return sql, nil
	}
	return sql, params
}
