package ifc

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	guidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"
	guidLength   = 22
)

// NewGUID returns a fresh GlobalId in the 22 character IFC encoding.
func NewGUID() string {
	return CompressGUID(uuid.New())
}

// CompressGUID encodes a 128-bit UUID as an IFC GlobalId: the first byte
// becomes two characters, each following 3-byte group becomes four.
func CompressGUID(u uuid.UUID) string {
	var out [guidLength]byte
	encode := func(v uint32, dst []byte) {
		for i := len(dst) - 1; i >= 0; i-- {
			dst[i] = guidAlphabet[v%64]
			v /= 64
		}
	}
	encode(uint32(u[0]), out[0:2])
	for i, j := 1, 2; i < 16; i, j = i+3, j+4 {
		encode(uint32(u[i])<<16|uint32(u[i+1])<<8|uint32(u[i+2]), out[j:j+4])
	}
	return string(out[:])
}

// ExpandGUID decodes an IFC GlobalId back to its UUID.
func ExpandGUID(s string) (uuid.UUID, error) {
	var u uuid.UUID
	if !ValidGUID(s) {
		return u, fmt.Errorf("invalid IFC GlobalId %q", s)
	}
	decode := func(chunk string) uint32 {
		var v uint32
		for i := 0; i < len(chunk); i++ {
			v = v*64 + uint32(strings.IndexByte(guidAlphabet, chunk[i]))
		}
		return v
	}
	u[0] = byte(decode(s[0:2]))
	for i, j := 1, 2; i < 16; i, j = i+3, j+4 {
		v := decode(s[j : j+4])
		u[i], u[i+1], u[i+2] = byte(v>>16), byte(v>>8), byte(v)
	}
	return u, nil
}

// ValidGUID reports whether s is a well-formed GlobalId.
func ValidGUID(s string) bool {
	if len(s) != guidLength || s[0] < '0' || s[0] > '3' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if strings.IndexByte(guidAlphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// ValidGUIDPrefix reports whether s could start a compressed GUID.
func ValidGUIDPrefix(s string) bool {
	if s == "" || len(s) > guidLength || s[0] < '0' || s[0] > '3' {
		return false
	}
	return strings.Trim(s, guidAlphabet) == ""
}
