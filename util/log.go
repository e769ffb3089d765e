package util
import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

/*
 * logger configuration and construction. the mode is a bitmask of
 * the levels to keep, as it always was; records go to a rotated file
 * or to stderr when no file is configured.
 */
const (
	Error = 1
	Warning = 2
	Info = 4
	Debug = 8

	DefaultMaxSizeMB = 10
	DefaultMaxBackups = 3
)

type LoggerInfo struct {
	Filename	string		`yaml:"filename"`
	IsColored	bool		`yaml:"is_colored"`
	SaveTime	bool		`yaml:"save_time"`
	Mode		uint8		`yaml:"mode"`
	MaxSizeMB	int		`yaml:"max_size_mb"`
	MaxBackups	int		`yaml:"max_backups"`
}

func(li *LoggerInfo) enabled( level zapcore.Level ) bool {
	switch {
	case level >= zapcore.ErrorLevel:
		return li.Mode & Error == Error
	case level == zapcore.WarnLevel:
		return li.Mode & Warning == Warning
	case level == zapcore.InfoLevel:
		return li.Mode & Info == Info
	}
	return li.Mode & Debug == Debug
}

func(li *LoggerInfo) writer() zapcore.WriteSyncer {
	if li.Filename == "" {
		return zapcore.Lock( os.Stderr )
	}
	maxSize, maxBackups := li.MaxSizeMB, li.MaxBackups
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	return zapcore.AddSync( &lumberjack.Logger{
		Filename: li.Filename,
		MaxSize: maxSize,
		MaxBackups: maxBackups,
	})
}

func NewLogger( li *LoggerInfo ) *zap.Logger {
	if li == nil {
		return zap.NewNop()
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if li.IsColored {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if li.SaveTime == false {
		encCfg.TimeKey = ""
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder( encCfg ),
		li.writer(),
		zap.LevelEnablerFunc( li.enabled ),
	)
	return zap.New( core )
}
