package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/lumberjack.v2"
)

type Log struct {
	Base   *zap.Logger
	Sugar  *zap.SugaredLogger
	Level  zap.AtomicLevel
	Closer func()
}

// Init builds the process logger. Production uses JSON output, everything
// else the development console encoder. When file is set, entries are also
// written as JSON to a size-rotated file.
func Init(level, env, file string) (*Log, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var cfg zap.Config
	if strings.ToLower(env) == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}

	closeFile := func() {}
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			LocalTime:  true,
		}
		fileEncoder := cfg.EncoderConfig
		fileEncoder.EncodeLevel = zapcore.LowercaseLevelEncoder
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoder), zapcore.AddSync(rotator), lvl)
		base = base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
		closeFile = func() { _ = rotator.Close() }
	}

	return &Log{
		Base:  base,
		Sugar: base.Sugar(),
		Level: lvl,
		Closer: func() {
			_ = base.Sync()
			closeFile()
		},
	}, nil
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without a logger.
func Nop() *Log {
	base := zap.NewNop()
	return &Log{
		Base:   base,
		Sugar:  base.Sugar(),
		Level:  zap.NewAtomicLevelAt(zap.InfoLevel),
		Closer: func() {},
	}
}
