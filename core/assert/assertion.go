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

package assert

import (
	"fmt"
	"strings"
)

// Assertion is the type for the start of an assertion line.
// You construct an assertion from a Manager using For, and then hang
// value-specific checks off it using the That methods.
type Assertion struct {
	to    Output
	title string
	extra []string
}

// Got adds the value being tested to the assertion failure report.
func (a *Assertion) Got(value interface{}) *Assertion {
	a.extra = append(a.extra, fmt.Sprintf("Got       %v", value))
	return a
}

// Expect adds the expectation to the assertion failure report.
func (a *Assertion) Expect(op string, value interface{}) *Assertion {
	a.extra = append(a.extra, fmt.Sprintf("Expect %2s %v", op, value))
	return a
}

// Add appends a custom line to the assertion failure report.
func (a *Assertion) Add(name string, value interface{}) *Assertion {
	a.extra = append(a.extra, fmt.Sprintf("%-9s %v", name, value))
	return a
}

// Compare is a helper for the common got/op/expect case.
func (a *Assertion) Compare(value interface{}, op string, expect interface{}) *Assertion {
	return a.Got(value).Expect(op, expect)
}

// Test delivers the assertion outcome, reporting a failure if ok is false.
// It returns ok so assertions can be chained into control flow.
func (a *Assertion) Test(ok bool) bool {
	if !ok {
		lines := append([]string{a.title}, a.extra...)
		a.to.Error(strings.Join(lines, "\n"))
	}
	return ok
}
