// Copyright (C) 2017 Google Inc.
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

// Package log provides a logging system that works well with context.
// The handler and severity filter are carried by the context, so that all
// functions taking a context can log without any other plumbing.
package log

import (
	"context"
	"fmt"
	"os"
)

type handlerKeyTy struct{}
type filterKeyTy struct{}

var (
	handlerKey handlerKeyTy
	filterKey  filterKeyTy
)

// Message is a single log record.
type Message struct {
	// Text is the fully formatted message text.
	Text string
	// Severity is the importance of the message.
	Severity Severity
}

// Handler is the interface to an object that can process log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }
func (h handler) Close() {
	if h.close != nil {
		h.close()
	}
}

// NewHandler returns a Handler that calls the provided functions.
func NewHandler(handle func(*Message), close func()) Handler {
	return handler{handle, close}
}

// Stdout returns a Handler that writes to os.Stdout.
func Stdout() Handler {
	return NewHandler(func(m *Message) {
		fmt.Fprintf(os.Stdout, "%s: %s\n", m.Severity.Short(), m.Text)
	}, nil)
}

// PutHandler returns a new context with the handler set as the target for all
// log messages.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// GetHandler returns the Handler assigned to the context, or nil.
func GetHandler(ctx context.Context) Handler {
	h, _ := ctx.Value(handlerKey).(Handler)
	return h
}

// PutFilter returns a new context with messages below the severity s dropped.
func PutFilter(ctx context.Context, s Severity) context.Context {
	return context.WithValue(ctx, filterKey, s)
}

// GetFilter returns the severity filter assigned to the context.
func GetFilter(ctx context.Context) Severity {
	s, ok := ctx.Value(filterKey).(Severity)
	if !ok {
		return Verbose
	}
	return s
}

// Background returns a context with the default stdout handler assigned.
func Background() context.Context {
	return PutHandler(context.Background(), Stdout())
}

func send(ctx context.Context, s Severity, format string, args ...interface{}) {
	if s < GetFilter(ctx) {
		return
	}
	h := GetHandler(ctx)
	if h == nil {
		return
	}
	h.Handle(&Message{Text: fmt.Sprintf(format, args...), Severity: s})
}

// V logs a verbose message to the logging target.
func V(ctx context.Context, format string, args ...interface{}) {
	send(ctx, Verbose, format, args...)
}

// D logs a debug message to the logging target.
func D(ctx context.Context, format string, args ...interface{}) {
	send(ctx, Debug, format, args...)
}

// I logs an informational message to the logging target.
func I(ctx context.Context, format string, args ...interface{}) {
	send(ctx, Info, format, args...)
}

// W logs a warning message to the logging target.
func W(ctx context.Context, format string, args ...interface{}) {
	send(ctx, Warning, format, args...)
}

// E logs an error message to the logging target.
func E(ctx context.Context, format string, args ...interface{}) {
	send(ctx, Error, format, args...)
}

// F logs a fatal message to the logging target. If abort is true then the
// process is stopped after the message is delivered.
func F(ctx context.Context, abort bool, format string, args ...interface{}) {
	send(ctx, Fatal, format, args...)
	if abort {
		panic(fmt.Errorf(format, args...))
	}
}

// Err logs an error message with an associated causing error.
func Err(ctx context.Context, err error, msg string) {
	if err != nil {
		E(ctx, "%s: %v", msg, err)
	} else {
		E(ctx, "%s", msg)
	}
}
