/*
 *     Copyright 2022 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package slices

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// FindDuplicate returns duplicate element in a collection.
func FindDuplicate[T comparable](s []T) (T, bool) {
	visited := make(map[T]struct{})
	for _, v := range s {
		if _, ok := visited[v]; ok {
			return v, true
		}

		visited[v] = struct{}{}
	}

	var zero T
	return zero, false
}

// Levels returns the distinct elements of a collection in ascending order.
func Levels[T constraints.Ordered](s []T) []T {
	levels := append([]T(nil), s...)
	slices.Sort(levels)
	return slices.Compact(levels)
}

// Encode returns the levels of a collection and every element replaced by
// the index of its level.
func Encode[T constraints.Ordered](s []T) ([]T, []int) {
	levels := Levels(s)
	index := make(map[T]int, len(levels))
	for i, v := range levels {
		index[v] = i
	}

	codes := make([]int, len(s))
	for i, v := range s {
		codes[i] = index[v]
	}

	return levels, codes
}
