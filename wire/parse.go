package wire

// Parse decodes the concatenated frame sequence in payload — the
// decrypted bytes of a single QUIC packet — into three ordered lists:
// regular frames, ACK frames, and CRYPTO (TLS) frames. Parsing is
// all-or-nothing: on error, no partial result is returned. Parse uses
// DefaultLimits(); call ParseWithLimits to override them.
func Parse(payload []byte) (*Result, error) {
	return ParseWithLimits(payload, DefaultLimits())
}

// ParseWithLimits is Parse with explicit soft caps on payload and
// per-message sizes (see Limits). It changes no wire semantics: every
// payload ParseWithLimits rejects for exceeding a limit would otherwise
// decode successfully under Parse's defaults only if the payload is
// smaller than those defaults too.
func ParseWithLimits(payload []byte, limits Limits) (*Result, error) {
	if limits.MaxPayloadLen > 0 && len(payload) > limits.MaxPayloadLen {
		return nil, badArg("payload length %d exceeds MaxPayloadLen %d", len(payload), limits.MaxPayloadLen)
	}

	res := &Result{}
	pos := 0
	for pos < len(payload) {
		consumed, terminal, perr := decodeFrame(payload[pos:], res, limits)
		if perr != nil {
			return nil, perr
		}
		pos += consumed
		if terminal {
			if pos != len(payload) {
				return nil, protocolViolation("bytes remain after terminator frame: consumed %d of %d", pos, len(payload))
			}
			break
		}
	}
	return res, nil
}
