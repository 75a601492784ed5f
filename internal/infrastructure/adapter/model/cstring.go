// Package model defines the fixed-layout binary records stored in the entity
// files, plus mappers to and from the domain entities. Every field is a
// fixed-size integer or byte array so each record occupies a constant number
// of bytes and can be addressed by offset.
package model

import "bytes"

// putString copies s into dst, NUL-padding the remainder. Over-long values
// are truncated to the field width.
func putString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// getString returns the string up to the first NUL byte.
func getString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
