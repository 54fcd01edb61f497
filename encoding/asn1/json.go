// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package asn1

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// JSONWriter is the diagnostic dump sink spec.md §4.2.3 calls out as
// optional: a minimal streaming object/array writer good enough to
// render a decoded message for logs, not a general JSON encoder.
type JSONWriter struct {
	b         strings.Builder
	depth     []bool // true once a field has been written at this depth
	afterName bool   // a field name was just written; its value takes no comma
}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

func (jw *JSONWriter) comma() {
	if jw.afterName {
		jw.afterName = false
		return
	}
	if len(jw.depth) == 0 {
		return
	}
	top := len(jw.depth) - 1
	if jw.depth[top] {
		jw.b.WriteByte(',')
	}
	jw.depth[top] = true
}

func (jw *JSONWriter) WriteField(name string, v JSONValue) {
	jw.comma()
	fmt.Fprintf(&jw.b, "%q:", name)
	jw.afterName = true
	v.ToJSON(jw)
}

func (jw *JSONWriter) StartObject() {
	jw.comma()
	jw.b.WriteByte('{')
	jw.depth = append(jw.depth, false)
}

func (jw *JSONWriter) EndObject() {
	jw.b.WriteByte('}')
	jw.depth = jw.depth[:len(jw.depth)-1]
}

func (jw *JSONWriter) WriteInt(v int64) {
	jw.comma()
	fmt.Fprintf(&jw.b, "%d", v)
}

func (jw *JSONWriter) WriteString(s string) {
	jw.comma()
	fmt.Fprintf(&jw.b, "%q", s)
}

func (jw *JSONWriter) WriteHex(b []byte) {
	jw.comma()
	fmt.Fprintf(&jw.b, "%q", hex.EncodeToString(b))
}

func (jw *JSONWriter) String() string { return jw.b.String() }
