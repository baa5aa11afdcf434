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

import "reflect"

// OnSlice is the result of calling ThatSlice on an Assertion.
// It provides assertion tests that are specific to slice types.
type OnSlice struct {
	assertion *Assertion
	slice     reflect.Value
}

// ThatSlice returns an OnSlice for slice specific assertions.
func (a *Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{assertion: a, slice: reflect.ValueOf(slice)}
}

// IsEmpty asserts that the slice has no entries.
func (o OnSlice) IsEmpty() bool {
	return o.IsLength(0)
}

// IsNotEmpty asserts that the slice has at least one entry.
func (o OnSlice) IsNotEmpty() bool {
	return o.assertion.Got(o.slice.Len()).Expect(">", 0).Test(o.slice.Len() > 0)
}

// IsLength asserts that the slice has exactly the specified number of entries.
func (o OnSlice) IsLength(length int) bool {
	return o.assertion.Compare(o.slice.Len(), "length ==", length).Test(o.slice.Len() == length)
}
