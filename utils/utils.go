// Package utils contains small helpers for the mmsnap CLI output.
package utils

import "fmt"

// DisplayASCII represents a value as ascii if it only contains safe ascii
// characters. If it contains unsafe characters, these are replaced by '.'
// and a hex representation is added to the output.
func DisplayASCII(b []byte) string {
	ret := make([]byte, len(b))
	unsafe := false
	for i, ch := range b {
		if ch < 32 || ch > 126 {
			ret[i] = '.'
			unsafe = true
		} else {
			ret[i] = ch
		}
	}
	if unsafe || len(b) == 0 {
		return fmt.Sprintf("%s [% 0x]", string(ret), b)
	}
	return string(ret)
}

// DisplayASCIIString is DisplayASCII for strings.
func DisplayASCIIString(s string) string {
	return DisplayASCII([]byte(s))
}
