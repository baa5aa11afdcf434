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

// Package diag holds source positions and the diagnostic sink the semantic
// passes report through.
package diag

import (
	"fmt"

	"github.com/google/vecc/core/fault"
)

// AbortCheck is paniced when checking cannot continue. It is recovered at the
// top level driver, to allow the diagnostics to be cleanly returned to the
// caller.
const AbortCheck = fault.Const("abort")

// Pos is a location in a source file.
type Pos struct {
	Filename string
	Line     int
	Column   int
}

// NoPos is the zero position, used for diagnostics with no source anchor.
var NoPos = Pos{}

func (p Pos) String() string {
	if p.Filename == "" && p.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Severity classifies a diagnostic.
type Severity int

const (
	// Error marks a diagnostic that fails the compilation.
	Error Severity = iota
	// Warning marks a recoverable problem in the input.
	Warning
	// PerformanceWarning marks input that will compile to slow code.
	PerformanceWarning
	// Fatal marks an internal invariant violation.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case PerformanceWarning:
		return "Performance Warning"
	case Fatal:
		return "FATAL"
	default:
		return "?"
	}
}

// Diagnostic is a single message produced by the semantic passes.
type Diagnostic struct {
	// At is the source position the diagnostic refers to.
	At Pos
	// Severity is the class of the diagnostic.
	Severity Severity
	// Message is the text associated with the diagnostic.
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%v: %v: %v", d.At, d.Severity, d.Message)
}

// Sink is the interface the semantic passes report diagnostics through.
type Sink interface {
	Error(at Pos, format string, args ...interface{})
	Warning(at Pos, format string, args ...interface{})
	PerformanceWarning(at Pos, format string, args ...interface{})
	Fatal(format string, args ...interface{})
}

// Log is a Sink that collects diagnostics into a list.
type Log struct {
	diagnostics []Diagnostic
	errors      int
}

var _ Sink = (*Log)(nil)

func (l *Log) add(at Pos, s Severity, format string, args ...interface{}) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		At:       at,
		Severity: s,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Error implements Sink, recording an error diagnostic.
func (l *Log) Error(at Pos, format string, args ...interface{}) {
	l.add(at, Error, format, args...)
	l.errors++
}

// Warning implements Sink, recording a warning diagnostic.
func (l *Log) Warning(at Pos, format string, args ...interface{}) {
	l.add(at, Warning, format, args...)
}

// PerformanceWarning implements Sink, recording a performance warning.
func (l *Log) PerformanceWarning(at Pos, format string, args ...interface{}) {
	l.add(at, PerformanceWarning, format, args...)
}

// Fatal implements Sink. It records the message and panics with AbortCheck,
// to be recovered by the pass driver.
func (l *Log) Fatal(format string, args ...interface{}) {
	l.add(NoPos, Fatal, format, args...)
	l.errors++
	panic(AbortCheck)
}

// Diagnostics returns everything recorded so far, in report order.
func (l *Log) Diagnostics() []Diagnostic { return l.diagnostics }

// ErrorCount returns the number of error and fatal diagnostics recorded.
func (l *Log) ErrorCount() int { return l.errors }

// Errors returns only the diagnostics that fail a compilation.
func (l *Log) Errors() []Diagnostic {
	out := []Diagnostic{}
	for _, d := range l.diagnostics {
		if d.Severity == Error || d.Severity == Fatal {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the non-failing diagnostics.
func (l *Log) Warnings() []Diagnostic {
	out := []Diagnostic{}
	for _, d := range l.diagnostics {
		if d.Severity == Warning || d.Severity == PerformanceWarning {
			out = append(out, d)
		}
	}
	return out
}

// First returns the first diagnostic recorded, or the zero Diagnostic.
func (l *Log) First() Diagnostic {
	if len(l.diagnostics) == 0 {
		return Diagnostic{}
	}
	return l.diagnostics[0]
}
