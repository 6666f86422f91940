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

package uri_test

import (
	"fmt"

	"github.com/jplu/urikit/uri"
)

func ExampleEncode() {
	encoded, err := uri.Encode("http://münchen.de/straße?q=ü")
	if err != nil {
		panic(err)
	}
	decoded, err := uri.Decode(encoded)
	if err != nil {
		panic(err)
	}
	fmt.Println(encoded)
	fmt.Println(decoded)
	// Output:
	// http://xn--mnchen-3ya.de/stra%C3%9Fe?q=%C3%BC
	// http://münchen.de/straße?q=ü
}
