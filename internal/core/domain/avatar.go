package domain

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// AvatarColor derives a stable hex colour from s, hashing its UTF-16 code
// units with 32-bit shift semantics so the front-end computes the same value.
func AvatarColor(s string) string {
	var hash int64
	for _, unit := range utf16.Encode([]rune(s)) {
		shifted := int32(uint32(int32(hash)) << 5)
		hash = int64(unit) + (int64(shifted) - hash)
	}

	var b strings.Builder
	b.WriteByte('#')
	h := int32(hash)
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%02x", (h>>(i*8))&0xff)
	}
	return b.String()
}
