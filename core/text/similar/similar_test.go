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

package similar_test

import (
	"testing"

	"github.com/google/vecc/core/assert"
	"github.com/google/vecc/core/log"
	"github.com/google/vecc/core/text/similar"
)

func TestDistance(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"radius", "radius", 0},
		{"radius", "raduis", 2},
	} {
		assert.For(ctx, "distance %q %q", test.a, test.b).
			That(similar.Distance(test.a, test.b)).Equals(test.want)
		assert.For(ctx, "distance symmetric %q %q", test.a, test.b).
			That(similar.Distance(test.b, test.a)).Equals(test.want)
	}
}

func TestClosest(t *testing.T) {
	ctx := log.Testing(t)
	names := []string{"normalize", "normal", "normals", "dot", "cross"}

	assert.For(ctx, "single best").
		That(similar.Closest("normel", names)).DeepEquals([]string{"normal"})
	assert.For(ctx, "tied set").
		That(similar.Closest("normalz", names)).DeepEquals([]string{"normal", "normals"})
	assert.For(ctx, "nothing close").
		ThatSlice(similar.Closest("saturate", names)).IsEmpty()
	assert.For(ctx, "duplicates removed").
		That(similar.Closest("dott", []string{"dot", "dot"})).DeepEquals([]string{"dot"})
}
