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

// OnString is the result of calling ThatString on an Assertion.
// It provides assertion tests that are specific to strings.
type OnString struct {
	assertion *Assertion
	value     string
}

// ThatString returns an OnString for string based assertions.
// The untyped argument is converted to a string with fmt.Sprint if needed.
func (a *Assertion) ThatString(v interface{}) OnString {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return OnString{assertion: a, value: s}
}

// Equals asserts that the string matches the expected string.
func (o OnString) Equals(expect string) bool {
	return o.assertion.Compare(o.value, "==", expect).Test(o.value == expect)
}

// NotEquals asserts that the string does not match the supplied string.
func (o OnString) NotEquals(test string) bool {
	return o.assertion.Compare(o.value, "!=", test).Test(o.value != test)
}

// Contains asserts that the string contains the supplied substring.
func (o OnString) Contains(substr string) bool {
	return o.assertion.Compare(o.value, "contains", substr).Test(strings.Contains(o.value, substr))
}

// HasPrefix asserts that the string starts with the supplied prefix.
func (o OnString) HasPrefix(prefix string) bool {
	return o.assertion.Compare(o.value, "starts with", prefix).Test(strings.HasPrefix(o.value, prefix))
}

// HasSuffix asserts that the string ends with the supplied suffix.
func (o OnString) HasSuffix(suffix string) bool {
	return o.assertion.Compare(o.value, "ends with", suffix).Test(strings.HasSuffix(o.value, suffix))
}
