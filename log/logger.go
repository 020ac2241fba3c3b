// Copyright 2026 The xtsledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log wraps a process wide zap sugared logger.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootLogger *zap.SugaredLogger
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

func init() {
	logger, err := build(zap.NewProductionConfig())
	if err != nil {
		panic(err)
	}
	rootLogger = logger
}

func build(config zap.Config) (*zap.SugaredLogger, error) {
	config.Level = level
	// Errors are expected on a busy server (dropped connections,
	// rejected transfers), only print stacks for panics.
	stacktraceOption := zap.AddStacktrace(zapcore.DPanicLevel)
	callerOption := zap.AddCallerSkip(1)
	logger, err := config.Build(stacktraceOption, callerOption)
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Initialize redirects the root logger to the given file in
// addition to stderr. It should be called once at startup.
func Initialize(path string) error {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr", path}
	logger, err := build(config)
	if err != nil {
		return err
	}
	rootLogger = logger
	return nil
}

func OpenDebug() {
	level.SetLevel(zap.DebugLevel)
}

func CloseDebug() {
	level.SetLevel(zap.InfoLevel)
}

// Sync flushes buffered entries.
func Sync() {
	rootLogger.Sync()
}

// With returns a child logger carrying the key/value pairs,
// used to tag all the entries of one client session.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return rootLogger.Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

func Error(args ...interface{}) {
	rootLogger.Error(args...)
}

func Errorf(template string, args ...interface{}) {
	rootLogger.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	rootLogger.Errorw(msg, keysAndValues...)
}

func Fatal(args ...interface{}) {
	rootLogger.Fatal(args...)
}

func Fatalf(template string, args ...interface{}) {
	rootLogger.Fatalf(template, args...)
}

func Warnf(template string, args ...interface{}) {
	rootLogger.Warnf(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	rootLogger.Warnw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	rootLogger.Info(args...)
}

func Infof(template string, args ...interface{}) {
	rootLogger.Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	rootLogger.Infow(msg, keysAndValues...)
}

func Debugf(template string, args ...interface{}) {
	rootLogger.Debugf(template, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	rootLogger.Debugw(msg, keysAndValues...)
}
