/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uri

// optional is a value that may be absent. The zero value is absent.
type optional[T comparable] struct {
	value T
	valid bool
}

func some[T comparable](v T) optional[T] { return optional[T]{value: v, valid: true} }

func (o optional[T]) get() (T, bool) { return o.value, o.valid }

// mapString applies fn to a present string and passes an absent one through.
func mapString(o optional[string], fn func(string) string) optional[string] {
	if !o.valid {
		return o
	}
	return some(fn(o.value))
}
