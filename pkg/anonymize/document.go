package anonymize

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Document anonymizes a whole JSON document and returns it pretty-printed
// with 4-space indentation. The output is structurally identical to the
// input: same key order, same array order, and non-string scalars are
// emitted byte-for-byte from the original.
func (a *Anonymizer) Document(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedInput
	}
	var b strings.Builder
	b.Grow(len(raw))
	a.walk(&b, "", gjson.ParseBytes(raw))
	return pretty.PrettyOptions([]byte(b.String()), &pretty.Options{Indent: "    "}), nil
}

// walk emits the anonymized form of node. Traversal is post-order: children
// are resolved before the parent's key policy runs, so the policy only ever
// sees scalars.
func (a *Anonymizer) walk(b *strings.Builder, key string, node gjson.Result) {
	switch {
	case node.IsObject():
		b.WriteByte('{')
		first := true
		node.ForEach(func(k, v gjson.Result) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.Write(encodeString(k.String()))
			b.WriteByte(':')
			a.walk(b, k.String(), v)
			return true
		})
		b.WriteByte('}')
	case node.IsArray():
		b.WriteByte('[')
		first := true
		node.ForEach(func(_, v gjson.Result) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			// Array elements carry no key of their own.
			a.walk(b, "", v)
			return true
		})
		b.WriteByte(']')
	case node.Type == gjson.String:
		original := node.String()
		replaced := a.Value(key, original)
		if replaced == original {
			// Keep original bytes, escapes included.
			b.WriteString(node.Raw)
			return
		}
		b.Write(encodeString(replaced))
	default:
		// Numbers, booleans, null: original bytes verbatim.
		b.WriteString(node.Raw)
	}
}

// encodeString JSON-encodes s without HTML escaping, so innocuous characters
// like '<' survive a rewrite untouched.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a plain string cannot fail
	out := buf.Bytes()
	return out[:len(out)-1] // drop Encode's trailing newline
}
