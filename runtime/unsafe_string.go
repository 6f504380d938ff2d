package utf8stats

import "unsafe"

// unsafeBytes returns a byte slice that shares the memory of s. The result
// must never be written to.
func unsafeBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
