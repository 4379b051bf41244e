/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/CESSProject/iris-node/configs"
	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFiles lists the named logs written by a node, one file per name.
var LogFiles = []string{
	"log",
	"panic",
	"session",
	"pipeline",
	"bootstrap",
}

type Logger interface {
	Log(level string, msg string)
	Pnc(msg string)
	Session(level string, msg string)
	Pipeline(level string, msg string)
	Boot(level string, msg string)
}

type logs struct {
	logpath map[string]string
	log     map[string]*zap.Logger
}

var _ Logger = (*logs)(nil)

func NewLogs(logfiles map[string]string) (Logger, error) {
	var (
		logpath = make(map[string]string, 0)
		logCli  = make(map[string]*zap.Logger)
	)
	for name, fpath := range logfiles {
		dir := getFilePath(fpath)
		_, err := os.Stat(dir)
		if err != nil {
			err = os.MkdirAll(dir, configs.DirMode)
			if err != nil {
				return nil, errors.Errorf("%v,%v", dir, err)
			}
		}
		Encoder := getEncoder()
		newCore := zapcore.NewTee(
			zapcore.NewCore(Encoder, getWriteSyncer(fpath), zap.NewAtomicLevel()),
		)
		logpath[name] = fpath
		logCli[name] = zap.New(newCore, zap.AddCaller())
		logCli[name].Sugar().Infof("%v", fpath)
	}
	return &logs{
		logpath: logpath,
		log:     logCli,
	}, nil
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	var logCli = make(map[string]*zap.Logger, len(LogFiles))
	for _, name := range LogFiles {
		logCli[name] = zap.NewNop()
	}
	return &logs{
		logpath: make(map[string]string),
		log:     logCli,
	}
}

func (l *logs) Log(level string, msg string) {
	l.write("log", level, msg)
}

func (l *logs) Pnc(msg string) {
	l.write("panic", "err", msg)
}

func (l *logs) Session(level string, msg string) {
	l.write("session", level, msg)
}

func (l *logs) Pipeline(level string, msg string) {
	l.write("pipeline", level, msg)
}

func (l *logs) Boot(level string, msg string) {
	l.write("bootstrap", level, msg)
}

func (l *logs) write(name, level, msg string) {
	v, ok := l.log[name]
	if !ok {
		return
	}
	_, file, line, _ := runtime.Caller(2)
	prefix := fmt.Sprintf("[%v:%d] ", filepath.Base(file), line)
	switch level {
	case "info":
		v.Sugar().Info(prefix + msg)
	case "warn":
		v.Sugar().Warn(prefix + msg)
	case "err":
		v.Sugar().Error(prefix + msg)
	}
}

func getFilePath(fpath string) string {
	path, _ := filepath.Abs(fpath)
	index := strings.LastIndex(path, string(os.PathSeparator))
	ret := path[:index]
	return ret
}

func getEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller_line",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    cEncodeLevel,
			EncodeTime:     cEncodeTime,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   nil,
		})
}

func getWriteSyncer(fpath string) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   fpath,
		MaxSize:    10,
		MaxBackups: 99,
		MaxAge:     180,
		LocalTime:  true,
		Compress:   true,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func cEncodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func cEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}
