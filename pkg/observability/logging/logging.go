/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logging provides leveled, structured logfmt logging
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/trickstercache/blueprint/pkg/config"
	"github.com/trickstercache/blueprint/pkg/observability/logging/level"
)

var _ Logger = &logger{}

type Logger interface {
	SetLogLevel(level.Level)
	Level() level.Level
	Close()
	//
	Log(logLevel level.Level, event string, detail Pairs)
	Debug(event string, detail Pairs)
	Info(event string, detail Pairs)
	Warn(event string, detail Pairs)
	Error(event string, detail Pairs)
	Fatal(code int, event string, detail Pairs)
	//
	LogOnce(logLevel level.Level, key, event string, detail Pairs) bool
	DebugOnce(key, event string, detail Pairs) bool
	InfoOnce(key, event string, detail Pairs) bool
	WarnOnce(key, event string, detail Pairs) bool
	ErrorOnce(key, event string, detail Pairs) bool
	//
	HasLoggedOnce(logLevel level.Level, key string) bool
	HasWarnedOnce(key string) bool
	HasErroredOnce(key string) bool
}

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]any

const appName = "blueprint"

// New returns a Logger for the provided logging configuration. When a log
// file is configured, the file is rotated by size and distinguished from other
// instances' files by the instance ID.
func New(conf *config.Config) Logger {
	var w io.Writer = os.Stdout
	logLevel := level.Info
	if conf != nil && conf.Logging != nil {
		logLevel = level.Level(conf.Logging.LogLevel)
		if conf.Logging.LogFile != "" {
			logFile := conf.Logging.LogFile
			if conf.Main != nil && conf.Main.InstanceID > 0 {
				logFile = strings.Replace(logFile, ".log",
					"."+strconv.Itoa(conf.Main.InstanceID)+".log", 1)
			}
			w = &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    256,  // megabytes
				MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
				MaxAge:     7,    // days
				Compress:   true, // Compress Rolled Backups
			}
		}
	}
	return StreamLogger(w, logLevel)
}

// StreamLogger returns a Logger that writes to w
func StreamLogger(w io.Writer, logLevel level.Level) Logger {
	l := &logger{exitFunc: os.Exit}
	if w != nil {
		l.kl = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w)),
			"time", kitlog.DefaultTimestampUTC,
			"app", appName,
		)
		if c, ok := w.(io.Closer); ok && w != io.Writer(os.Stdout) && w != io.Writer(os.Stderr) {
			l.closer = c
		}
	}
	l.SetLogLevel(logLevel)
	return l
}

// ConsoleLogger returns a Logger that writes to stdout
func ConsoleLogger(logLevel level.Level) Logger {
	return StreamLogger(os.Stdout, logLevel)
}

// NoopLogger returns a Logger that discards all events
func NoopLogger() Logger {
	return StreamLogger(nil, level.Info)
}

type logger struct {
	level          level.Level
	levelID        level.ID
	kl             kitlog.Logger
	closer         io.Closer
	onceRanEntries sync.Map
	exitFunc       func(int)
}

func (l *logger) SetLogLevel(logLevel level.Level) {
	id := level.GetID(logLevel)
	if id == 0 {
		l.WarnOnce("loglevel."+string(logLevel),
			"unknown log level; using INFO",
			Pairs{"providedLevel": logLevel})
		logLevel = level.Info
		id = level.InfoID
	}
	l.level = level.Level(strings.ToLower(string(logLevel)))
	l.levelID = id
}

func (l *logger) Level() level.Level {
	return l.level
}

func (l *logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

func (l *logger) Log(logLevel level.Level, event string, detail Pairs) {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return
	}
	l.log(logLevel, event, detail)
}

func (l *logger) logConditionally(logLevel level.Level, levelID level.ID,
	event string, detail Pairs) {
	if l.levelID > levelID {
		return
	}
	l.log(logLevel, event, detail)
}

func (l *logger) Debug(event string, detail Pairs) {
	l.logConditionally(level.Debug, level.DebugID, event, detail)
}

func (l *logger) Info(event string, detail Pairs) {
	l.logConditionally(level.Info, level.InfoID, event, detail)
}

func (l *logger) Warn(event string, detail Pairs) {
	l.logConditionally(level.Warn, level.WarnID, event, detail)
}

func (l *logger) Error(event string, detail Pairs) {
	l.logConditionally(level.Error, level.ErrorID, event, detail)
}

// Fatal logs the event and exits the process. A negative code logs without
// exiting, which tests rely on.
func (l *logger) Fatal(code int, event string, detail Pairs) {
	l.log(level.Fatal, event, detail)
	if code < 0 {
		return
	}
	if code == 0 {
		code = 1
	}
	l.exitFunc(code)
}

func (l *logger) LogOnce(logLevel level.Level, key, event string, detail Pairs) bool {
	return l.logOnce(logLevel, level.GetID(logLevel), key, event, detail)
}

func (l *logger) logOnce(logLevel level.Level, lid level.ID,
	key, event string, detail Pairs) bool {
	if lid == 0 || lid < l.levelID {
		return false
	}
	key = string(logLevel) + "." + key
	if _, ok := l.onceRanEntries.Load(key); ok {
		return false
	}
	// load or store is more expensive than load, so check via load first
	// and use LoadOrStore to ensure that log is only called once
	if _, ok := l.onceRanEntries.LoadOrStore(key, true); ok {
		return false
	}
	l.log(logLevel, event, detail)
	return true
}

func (l *logger) DebugOnce(key, event string, detail Pairs) bool {
	return l.logOnce(level.Debug, level.DebugID, key, event, detail)
}

func (l *logger) InfoOnce(key, event string, detail Pairs) bool {
	return l.logOnce(level.Info, level.InfoID, key, event, detail)
}

func (l *logger) WarnOnce(key, event string, detail Pairs) bool {
	return l.logOnce(level.Warn, level.WarnID, key, event, detail)
}

func (l *logger) ErrorOnce(key, event string, detail Pairs) bool {
	return l.logOnce(level.Error, level.ErrorID, key, event, detail)
}

func (l *logger) HasLoggedOnce(logLevel level.Level, key string) bool {
	_, ok := l.onceRanEntries.Load(string(logLevel) + "." + key)
	return ok
}

func (l *logger) HasWarnedOnce(key string) bool {
	return l.HasLoggedOnce(level.Warn, key)
}

func (l *logger) HasErroredOnce(key string) bool {
	return l.HasLoggedOnce(level.Error, key)
}

func (l *logger) log(logLevel level.Level, event string, detail Pairs) {
	if l.kl == nil {
		return
	}
	kv := make([]any, 0, 6+len(detail)*2)
	kv = append(kv, "level", string(logLevel), "event", strings.TrimSpace(event))
	if c := caller(); c != "" {
		kv = append(kv, "caller", c)
	}
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, detail[k])
	}
	l.kl.Log(kv...)
}

const (
	loggingPackage = "github.com/trickstercache/blueprint/pkg/observability/logging"
	loggerMethods  = loggingPackage + ".(*logger)."
	callerFunc     = loggingPackage + ".caller"
	// package-level wrappers in the logging/logger package
	loggerWrappers = loggingPackage + "/logger."
)

// isLoggingFrame reports whether fn is one of the logger's own frames. Other
// functions in the logging packages, including their tests, are callers.
func isLoggingFrame(fn string) bool {
	switch {
	case strings.HasPrefix(fn, loggerMethods), fn == callerFunc:
		return true
	case strings.HasPrefix(fn, loggerWrappers):
		name := strings.TrimPrefix(fn, loggerWrappers)
		return !strings.HasPrefix(name, "Test") && !strings.Contains(name, ".")
	}
	return false
}

// caller returns the first frame in the call stack outside of the logger
func caller() string {
	for _, c := range stack.Trace().TrimRuntime() {
		if isLoggingFrame(fmt.Sprintf("%+n", c)) {
			continue
		}
		return fmt.Sprintf("%+v", c)
	}
	return ""
}
