package ifc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Kind identifies the syntactic form of an attribute value.
type Kind uint8

const (
	KindNull    Kind = iota // $
	KindDerived             // *
	KindString
	KindEnum
	KindInteger
	KindReal
	KindBinary
	KindRef
	KindList
	KindTyped
)

// Value is one attribute value of a STEP record.
//
// Strings keep their encoded form in Raw so that unchanged records are written
// back byte for byte. Use Text to get the decoded string.
type Value struct {
	Kind  Kind
	Raw   string
	Ref   int
	Type  string
	Items []Value
}

func Null() Value { return Value{Kind: KindNull} }
func Derived() Value { return Value{Kind: KindDerived} }

// String returns a string value, encoding s with the ISO-10303-21 escapes.
func String(s string) Value { return Value{Kind: KindString, Raw: encodeString(s)} }

// Enum returns an enumeration value such as .T. or .ELEMENT. (name without dots).
func Enum(name string) Value { return Value{Kind: KindEnum, Raw: strings.ToUpper(name)} }

// Bool returns the .T. or .F. enumeration.
func Bool(b bool) Value {
	if b {
		return Enum("T")
	}
	return Enum("F")
}

func Integer(n int64) Value { return Value{Kind: KindInteger, Raw: strconv.FormatInt(n, 10)} }
func Real(f float64) Value { return Value{Kind: KindReal, Raw: formatReal(f)} }
func RefTo(id int) Value { return Value{Kind: KindRef, Ref: id} }
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindList, Items: items}
}

// Typed wraps v in a defined type, for example IFCBOOLEAN(.T.).
func Typed(typeName string, v Value) Value {
	return Value{Kind: KindTyped, Type: strings.ToUpper(typeName), Items: []Value{v}}
}

func (v Value) IsNull() bool { return v.Kind == KindNull || v.Kind == KindDerived }

// Text returns the decoded string of a string value or of a typed value
// wrapping one (IFCLABEL('x')).
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString:
		return decodeString(v.Raw), true
	case KindTyped:
		if len(v.Items) == 1 {
			return v.Items[0].Text()
		}
	}
	return "", false
}

// Float returns the numeric value of an integer or real, unwrapping typed values.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindInteger, KindReal:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case KindTyped:
		if len(v.Items) == 1 {
			return v.Items[0].Float()
		}
	}
	return 0, false
}

// Bool reports the logical value of .T./.F., unwrapping typed values.
func (v Value) Bool() (bool, bool) {
	switch v.Kind {
	case KindEnum:
		switch v.Raw {
		case "T":
			return true, true
		case "F":
			return false, true
		}
	case KindTyped:
		if len(v.Items) == 1 {
			return v.Items[0].Bool()
		}
	}
	return false, false
}

// RefID returns the referenced instance id of a reference value.
func (v Value) RefID() (int, bool) {
	if v.Kind != KindRef {
		return 0, false
	}
	return v.Ref, true
}

// Refs appends every instance reference nested in v to dst.
func (v Value) Refs(dst []int) []int {
	switch v.Kind {
	case KindRef:
		dst = append(dst, v.Ref)
	case KindList, KindTyped:
		for _, item := range v.Items {
			dst = item.Refs(dst)
		}
	}
	return dst
}

// Encode renders the value in exchange-file syntax.
func (v Value) Encode() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v Value) format(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteByte('$')
	case KindDerived:
		b.WriteByte('*')
	case KindString:
		b.WriteByte('\'')
		b.WriteString(v.Raw)
		b.WriteByte('\'')
	case KindEnum:
		b.WriteByte('.')
		b.WriteString(v.Raw)
		b.WriteByte('.')
	case KindInteger, KindReal:
		b.WriteString(v.Raw)
	case KindBinary:
		b.WriteByte('"')
		b.WriteString(v.Raw)
		b.WriteByte('"')
	case KindRef:
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(v.Ref))
	case KindList:
		b.WriteByte('(')
		formatValues(b, v.Items)
		b.WriteByte(')')
	case KindTyped:
		b.WriteString(v.Type)
		b.WriteByte('(')
		formatValues(b, v.Items)
		b.WriteByte(')')
	}
}

func formatValues(b *strings.Builder, values []Value) {
	for i, item := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		item.format(b)
	}
}

// formatReal renders f so that it always carries a decimal point, as the
// exchange format requires (1. and 1.E+06 rather than 1 and 1e+06).
func formatReal(f float64) string {
	s := strings.ToUpper(strconv.FormatFloat(f, 'G', -1, 64))
	if strings.ContainsRune(s, '.') {
		return s
	}
	if i := strings.IndexByte(s, 'E'); i >= 0 {
		return s[:i] + "." + s[i:]
	}
	return s + "."
}

func encodeString(s string) string {
	var b strings.Builder
	var wide []rune
	flush := func() {
		if len(wide) == 0 {
			return
		}
		b.WriteString(`\X2\`)
		for _, unit := range utf16.Encode(wide) {
			fmt.Fprintf(&b, "%04X", unit)
		}
		b.WriteString(`\X0\`)
		wide = wide[:0]
	}
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			wide = append(wide, r)
			continue
		}
		flush()
		switch r {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

func decodeString(raw string) string {
	if !strings.ContainsAny(raw, `'\`) {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); {
		rest := raw[i:]
		switch {
		case strings.HasPrefix(rest, "''"):
			b.WriteByte('\'')
			i += 2
		case strings.HasPrefix(rest, `\\`):
			b.WriteByte('\\')
			i += 2
		case strings.HasPrefix(rest, `\X2\`), strings.HasPrefix(rest, `\X4\`):
			width := 4
			if rest[2] == '4' {
				width = 8
			}
			end := strings.Index(rest[4:], `\X0\`)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			b.WriteString(decodeHex(rest[4:4+end], width))
			i += 4 + end + 4
		case strings.HasPrefix(rest, `\X\`) && len(rest) >= 5:
			n, err := strconv.ParseUint(rest[3:5], 16, 8)
			if err != nil {
				b.WriteByte(raw[i])
				i++
				continue
			}
			b.WriteRune(rune(n))
			i += 5
		case strings.HasPrefix(rest, `\S\`) && len(rest) >= 4:
			b.WriteRune(rune(rest[3]) + 128)
			i += 4
		case strings.HasPrefix(rest, `\P`) && len(rest) >= 4 && rest[3] == '\\':
			i += 4
		default:
			b.WriteByte(raw[i])
			i++
		}
	}
	return b.String()
}

func decodeHex(hex string, width int) string {
	if width == 8 {
		runes := make([]rune, 0, len(hex)/8)
		for j := 0; j+8 <= len(hex); j += 8 {
			n, err := strconv.ParseUint(hex[j:j+8], 16, 32)
			if err != nil {
				return hex
			}
			runes = append(runes, rune(n))
		}
		return string(runes)
	}
	units := make([]uint16, 0, len(hex)/4)
	for j := 0; j+4 <= len(hex); j += 4 {
		n, err := strconv.ParseUint(hex[j:j+4], 16, 16)
		if err != nil {
			return hex
		}
		units = append(units, uint16(n))
	}
	return string(utf16.Decode(units))
}
