package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, args ...any)
	Fatalf(ctx context.Context, template string, args ...any)
}

type ZapConfig struct {
	Level    string
	Mode     string
	Encoding string
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	cfg   ZapConfig
}

func InitializeZapLogger(cfg ZapConfig) Logger {
	l := &zapLogger{cfg: cfg}
	l.init()
	return l
}

func InitializeTestZapLogger() Logger {
	return InitializeZapLogger(ZapConfig{
		Level:    "debug",
		Mode:     "testing",
		Encoding: "console",
	})
}

var logLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
	"panic": zapcore.PanicLevel,
}

func (l *zapLogger) init() {
	level, ok := logLevelMap[l.cfg.Level]
	if !ok {
		level = zapcore.DebugLevel
	}

	var encoderCfg zapcore.EncoderConfig
	if l.cfg.Mode == "production" {
		encoderCfg = zap.NewProductionEncoderConfig()
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if l.cfg.Encoding == "json" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zap.NewAtomicLevelAt(level))
	l.sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Sugared is implemented by loggers that can hand out their underlying
// sugared logger for request-scoped derivation.
type Sugared interface {
	Sugar() *zap.SugaredLogger
}

func (l *zapLogger) Sugar() *zap.SugaredLogger {
	return l.sugar
}

// loggerKey holds the context key used for request-scoped loggers.
type loggerKey struct{}

// WithContext attaches a derived logger (e.g. one carrying a request id)
// to a context; log calls made with that context pick it up.
func WithContext(ctx context.Context, sugar *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, sugar)
}

// FromContext exposes the attached logger for callers that need to derive
// from it again.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	sugar, _ := ctx.Value(loggerKey{}).(*zap.SugaredLogger)
	return sugar
}

func (l *zapLogger) ctx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if sugar := FromContext(ctx); sugar != nil {
			return sugar
		}
	}
	return l.sugar
}

func (l *zapLogger) Debug(ctx context.Context, args ...any) {
	l.ctx(ctx).Debug(args...)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Debugf(template, args...)
}

func (l *zapLogger) Info(ctx context.Context, args ...any) {
	l.ctx(ctx).Info(args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Infof(template, args...)
}

func (l *zapLogger) Warn(ctx context.Context, args ...any) {
	l.ctx(ctx).Warn(args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Warnf(template, args...)
}

func (l *zapLogger) Error(ctx context.Context, args ...any) {
	l.ctx(ctx).Error(args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Errorf(template, args...)
}

func (l *zapLogger) Fatal(ctx context.Context, args ...any) {
	l.ctx(ctx).Fatal(args...)
}

func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.ctx(ctx).Fatalf(template, args...)
}
