package wiretest

import "github.com/google/uuid"

// RandomConnID synthesizes an n-byte connection ID from a random UUID,
// for new_conn_id fixtures and the truncated-frame fuzz property in
// spec.md §8. n may be any length 0..255; a UUID's 16 bytes are
// repeated/truncated to fill it.
func RandomConnID(n int) []byte {
	id := uuid.New()
	raw, _ := id.MarshalBinary() // 16 bytes, MarshalBinary on uuid.UUID never errors
	out := make([]byte, n)
	for i := range out {
		out[i] = raw[i%len(raw)]
	}
	return out
}

// TruncatedPrefixes returns buf truncated at every offset from 1 to
// len(buf)-1, for the "truncated frame at every byte offset" property
// in spec.md §8.
func TruncatedPrefixes(buf []byte) [][]byte {
	out := make([][]byte, 0, len(buf))
	for i := 1; i < len(buf); i++ {
		prefix := make([]byte, i)
		copy(prefix, buf[:i])
		out = append(out, prefix)
	}
	return out
}
