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

// OnValue is the result of calling That on an Assertion.
// It provides generic assertion tests that work for any type.
type OnValue struct {
	assertion *Assertion
	value     interface{}
}

// That returns an OnValue for the value v.
func (a *Assertion) That(v interface{}) OnValue {
	return OnValue{assertion: a, value: v}
}

// Equals asserts that the value is equal to the expected value.
func (o OnValue) Equals(expect interface{}) bool {
	return o.assertion.Compare(o.value, "==", expect).Test(o.value == expect)
}

// NotEquals asserts that the value is not equal to the supplied value.
func (o OnValue) NotEquals(test interface{}) bool {
	return o.assertion.Compare(o.value, "!=", test).Test(o.value != test)
}

// DeepEquals asserts that the value matches the expected value using
// reflect.DeepEqual.
func (o OnValue) DeepEquals(expect interface{}) bool {
	return o.assertion.Compare(o.value, "deep ==", expect).Test(reflect.DeepEqual(o.value, expect))
}

// IsNil asserts that the value is a nil value.
func (o OnValue) IsNil() bool {
	return o.assertion.Got(o.value).Expect("==", nil).Test(isNil(o.value))
}

// IsNotNil asserts that the value is not a nil value.
func (o OnValue) IsNotNil() bool {
	return o.assertion.Got(o.value).Expect("!=", nil).Test(!isNil(o.value))
}

// IsTrue asserts that the value is the boolean true.
func (o OnValue) IsTrue() bool { return o.Equals(true) }

// IsFalse asserts that the value is the boolean false.
func (o OnValue) IsFalse() bool { return o.Equals(false) }

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Ptr, reflect.Slice:
		return r.IsNil()
	default:
		return false
	}
}
