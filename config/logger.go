package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"reflow/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// consoleCores splits console output: errors go to stderr, the rest to stdout.
func consoleCores(level string) (low, high zapcore.Core) {
	var lowest zapcore.Level
	switch level {
	case "normal":
		lowest = zapcore.InfoLevel
	case "debug":
		lowest = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
	low = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	high = zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr), // filter errorVerbose
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return low, high
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// capturePanics redirects crash output next to the log, so it ends up in the
// report.
func capturePanics(dir, mode string, rpt *Report) {
	ef, err := openLog(filepath.Join(dir, misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			// just quietly ignore
			return
		}
	}
	debug.SetCrashOutput(ef, debug.CrashOptions{})
	rpt.Store("panic.log", ef.Name())
	ef.Close()
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	consoleCoreLP, consoleCoreHP := consoleCores(conf.ConsoleLogger.Level)

	var (
		level          zapcore.Level
		fileCore       = zapcore.NewNopCore()
		levelRequested = conf.FileLogger.Level
		modeRequested  = conf.FileLogger.Mode
		newName        string
	)

	if rpt != nil {
		// if report is requested always set maximum available logging level for file logger
		levelRequested = "debug"
		modeRequested = "overwrite"
	}

	switch levelRequested {
	case "debug":
		level = zap.DebugLevel
	case "normal":
		level = zap.InfoLevel
	default:
		levelRequested = ""
	}

	if levelRequested != "" {
		capturePanics(filepath.Dir(conf.FileLogger.Destination), modeRequested, rpt)

		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		f, err := openLog(conf.FileLogger.Destination, modeRequested)
		if err != nil {
			if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
				return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
			}
			newName = f.Name()
		}
		fileCore = zapcore.NewCore(fileEncoder, zapcore.Lock(f), zap.NewAtomicLevelAt(level))
		rpt.Store("final.log", f.Name())
	}

	core := zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP, fileCore), zap.AddCaller())
	if len(newName) != 0 {
		// log was redirected - we need to report this
		core.Warn("Log file was redirected to new location", zap.String("location", newName))
	}
	return core.Named(misc.GetAppName()), nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			// translator errors carry whole response bodies, keep console short
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
