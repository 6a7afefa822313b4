// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

import "strings"

// Game Boy text charset: A-Z at 0x80-0x99, a-z at 0xA0-0xB9, terminator
// 0x50, space 0x7F, plus a handful of punctuation and gender glyphs.
const (
	textTerminator = 0x50
	textSpace      = 0x7F
	textUpperBase  = 0x80
	textLowerBase  = 0xA0
)

// DecodeText converts Game Boy text to ASCII, stopping at the 0x50
// terminator. Unmapped glyphs become '?'.
func DecodeText(src []byte) string {
	var b strings.Builder
	for _, c := range src {
		switch {
		case c == textTerminator:
			return b.String()
		case c >= textUpperBase && c <= textUpperBase+25:
			b.WriteByte('A' + c - textUpperBase)
		case c >= textLowerBase && c <= textLowerBase+25:
			b.WriteByte('a' + c - textLowerBase)
		case c == textSpace:
			b.WriteByte(' ')
		case c == 0xE8:
			b.WriteByte('\'')
		case c == 0xE3:
			b.WriteByte('-')
		case c == 0xF2:
			b.WriteByte('.')
		case c == 0xEF:
			b.WriteByte('M') // male symbol
		case c == 0xF5:
			b.WriteByte('F') // female symbol
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// EncodeText converts ASCII to an 11-byte Game Boy name, terminator
// padded. Characters without a glyph are dropped; input is truncated to
// fit the terminator.
func EncodeText(s string) [NameLength]uint8 {
	var out [NameLength]uint8
	for i := range out {
		out[i] = textTerminator
	}

	n := 0
	for i := 0; i < len(s) && n < NameLength-1; i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out[n] = textUpperBase + c - 'A'
		case c >= 'a' && c <= 'z':
			out[n] = textLowerBase + c - 'a'
		case c == ' ':
			out[n] = textSpace
		case c == '\'':
			out[n] = 0xE8
		case c == '-':
			out[n] = 0xE3
		case c == '.':
			out[n] = 0xF2
		default:
			continue
		}
		n++
	}
	return out
}
