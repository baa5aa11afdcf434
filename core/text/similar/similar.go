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

// Package similar finds near matches to a word within a candidate set.
// It is used to build "did you mean" style suggestions for diagnostics.
package similar

import "sort"

// MaxDistance is the largest edit distance considered a near match.
const MaxDistance = 2

// Distance returns the Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(min(cur[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Closest returns the candidates at the smallest edit distance from word,
// considering only candidates within MaxDistance. The result is sorted and
// deduplicated. An empty slice means no candidate qualified.
func Closest(word string, candidates []string) []string {
	best := MaxDistance + 1
	matches := []string{}
	for _, c := range candidates {
		d := Distance(word, c)
		if d > MaxDistance || d > best {
			continue
		}
		if d < best {
			best = d
			matches = matches[:0]
		}
		matches = append(matches, c)
	}
	sort.Strings(matches)
	out := matches[:0]
	for i, m := range matches {
		if i == 0 || matches[i-1] != m {
			out = append(out, m)
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
