package wire

import "encoding/binary"

// Frame type bytes, per spec.md §4.1.
const (
	typeCryptoFrame = 0x18
	typeAckFrame    = 0x1A
	typeAckECNFrame = 0x1B

	typeStreamLow  = 0x10
	typeStreamHigh = 0x17
)

// flatTableKind maps the 16-entry 0x00..0x0F flat dispatch table to a
// frame kind. 0x00 (padding) is handled specially by the caller since it
// emits no frame.
var flatTableKind = [16]FrameKind{
	1:  FrameKindRstStream,
	2:  FrameKindConnClose,
	3:  FrameKindAppClose,
	4:  FrameKindMaxData,
	5:  FrameKindMaxStreamData,
	6:  FrameKindMaxStreamID,
	7:  FrameKindPing,
	8:  FrameKindDataBlocked,
	9:  FrameKindStreamDataBlocked,
	10: FrameKindStreamIDBlocked,
	11: FrameKindNewConnID,
	12: FrameKindStopSending,
	13: FrameKindRetireConnID,
	14: FrameKindPathChallenge,
	15: FrameKindPathResponse,
}

// decodeFrame reads exactly one frame (or silently consumes a padding
// byte) from the front of buf. It reports how many bytes it consumed,
// whether this frame must be the payload's last (a LEN=0 stream frame),
// and appends any emitted frame to res.
func decodeFrame(buf []byte, res *Result, limits Limits) (consumed int, terminal bool, perr *ParseError) {
	if len(buf) == 0 {
		return 0, false, protocolViolation("dispatch on exhausted input")
	}

	typeByte := buf[0]

	switch {
	case typeByte == 0x00:
		return 1, false, nil // padding: consumed silently, never emitted

	case typeByte <= 0x0F:
		kind := flatTableKind[typeByte]
		return decodeFlatFrame(kind, buf, res, limits)

	case typeByte >= typeStreamLow && typeByte <= typeStreamHigh:
		return decodeStreamFrame(typeByte, buf, res, limits)

	case typeByte == typeCryptoFrame:
		return decodeCryptoFrame(buf, res, limits)

	case typeByte == typeAckFrame:
		return decodeAckFrame(buf, res, false)

	case typeByte == typeAckECNFrame:
		return decodeAckFrame(buf, res, true)

	default:
		return 0, false, badArg("unknown frame type 0x%02x", typeByte)
	}
}

func decodeFlatFrame(kind FrameKind, buf []byte, res *Result, limits Limits) (int, bool, *ParseError) {
	pos := 1 // type byte
	rest := buf[pos:]

	switch kind {
	case FrameKindPing:
		res.Frames = append(res.Frames, Frame{Kind: FrameKindPing})
		return pos, false, nil

	case FrameKindRstStream:
		streamID, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		appErrWire, n, perr := readUint16(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		finalOffset, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		owner, styp := deriveStreamMeta(streamID)
		res.Frames = append(res.Frames, Frame{
			Kind: FrameKindRstStream, StreamID: streamID, StreamOwner: owner, StreamType: styp,
			AppErrorCode: decodeAppError(appErrWire), FinalOffset: finalOffset,
		})
		return pos, false, nil

	case FrameKindConnClose:
		codeWire, n, perr := readUint16(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		code, perr := decodeConnError(codeWire)
		if perr != nil {
			return 0, false, perr
		}

		msg, n, perr := readMessage(rest, limits)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		res.Frames = append(res.Frames, Frame{Kind: FrameKindConnClose, ErrorCode: code, ErrorMessage: msg})
		return pos, false, nil

	case FrameKindAppClose:
		appErrWire, n, perr := readUint16(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		msg, n, perr := readMessage(rest, limits)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		res.Frames = append(res.Frames, Frame{Kind: FrameKindAppClose, AppErrorCode: decodeAppError(appErrWire), ErrorMessage: msg})
		return pos, false, nil

	case FrameKindMaxData:
		v, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: FrameKindMaxData, MaxData: v})
		return pos + n, false, nil

	case FrameKindMaxStreamData:
		streamID, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		v, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		owner, styp := deriveStreamMeta(streamID)
		res.Frames = append(res.Frames, Frame{
			Kind: FrameKindMaxStreamData, StreamID: streamID, StreamOwner: owner, StreamType: styp, MaxStreamData: v,
		})
		return pos, false, nil

	case FrameKindMaxStreamID:
		v, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: FrameKindMaxStreamID, MaxStreamID: v})
		return pos + n, false, nil

	case FrameKindDataBlocked:
		v, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: FrameKindDataBlocked, Offset: v})
		return pos + n, false, nil

	case FrameKindStreamDataBlocked:
		streamID, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		offset, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		owner, styp := deriveStreamMeta(streamID)
		res.Frames = append(res.Frames, Frame{
			Kind: FrameKindStreamDataBlocked, StreamID: streamID, StreamOwner: owner, StreamType: styp, Offset: offset,
		})
		return pos, false, nil

	case FrameKindStreamIDBlocked:
		streamID, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: FrameKindStreamIDBlocked, StreamID: streamID})
		return pos + n, false, nil

	case FrameKindNewConnID:
		if len(rest) < 1 {
			return 0, false, badArg("new_conn_id: truncated before length byte")
		}
		connIDLen := int(rest[0] & 0x1F) // low 5 bits; top 3 bits reserved, ignored
		rest, pos = rest[1:], pos+1

		sequence, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		connID, n, perr := readFixed(rest, connIDLen)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		token, n, perr := readToken(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		res.Frames = append(res.Frames, Frame{
			Kind: FrameKindNewConnID, Sequence: sequence, ConnID: connID, StatelessResetToken: token,
		})
		return pos, false, nil

	case FrameKindStopSending:
		streamID, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		appErrWire, n, perr := readUint16(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		owner, styp := deriveStreamMeta(streamID)
		res.Frames = append(res.Frames, Frame{
			Kind: FrameKindStopSending, StreamID: streamID, StreamOwner: owner, StreamType: styp,
			AppErrorCode: decodeAppError(appErrWire),
		})
		return pos, false, nil

	case FrameKindRetireConnID:
		sequence, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: FrameKindRetireConnID, Sequence: sequence})
		return pos + n, false, nil

	case FrameKindPathChallenge, FrameKindPathResponse:
		nonce, n, perr := readNonce(rest)
		if perr != nil {
			return 0, false, perr
		}
		res.Frames = append(res.Frames, Frame{Kind: kind, Nonce: nonce})
		return pos + n, false, nil

	default:
		return 0, false, badArg("unhandled flat frame kind %v", kind)
	}
}

func decodeStreamFrame(typeByte byte, buf []byte, res *Result, limits Limits) (int, bool, *ParseError) {
	off := (typeByte>>2)&0x1 == 1
	hasLen := (typeByte>>1)&0x1 == 1
	fin := typeByte&0x1 == 1

	pos := 1
	rest := buf[pos:]

	streamID, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	var offset uint64
	if off {
		offset, n, perr = readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n
	}

	var data []byte
	var terminal bool
	if hasLen {
		data, n, perr = readMessage(rest, limits)
		if perr != nil {
			return 0, false, perr
		}
		pos += n
	} else {
		data = rest // consume the remainder of the payload verbatim
		pos = len(buf)
		terminal = true
	}

	var kind FrameKind
	switch {
	case fin:
		kind = FrameKindStreamClose
	case offset == 0 && hasLen:
		kind = FrameKindStreamOpen
	default:
		kind = FrameKindStreamData
	}

	owner, styp := deriveStreamMeta(streamID)
	res.Frames = append(res.Frames, Frame{
		Kind: kind, StreamID: streamID, StreamOwner: owner, StreamType: styp, Offset: offset, Payload: data,
	})
	return pos, terminal, nil
}

func decodeCryptoFrame(buf []byte, res *Result, limits Limits) (int, bool, *ParseError) {
	pos := 1
	rest := buf[pos:]

	offset, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	msg, n, perr := readMessage(rest, limits)
	if perr != nil {
		return 0, false, perr
	}
	pos += n

	res.TLS = append(res.TLS, Frame{Kind: FrameKindCrypto, Offset: offset, Length: uint64(len(msg)), Payload: msg})
	return pos, false, nil
}

func decodeAckFrame(buf []byte, res *Result, ecn bool) (int, bool, *ParseError) {
	pos := 1
	rest := buf[pos:]

	largest, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	delay, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	blockCount, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	firstAckRange, n, perr := readVarint(rest)
	if perr != nil {
		return 0, false, perr
	}
	rest, pos = rest[n:], pos+n

	pairs := make([]ackGapPair, 0, blockCount)
	for i := uint64(0); i < blockCount; i++ {
		gap, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		ack, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		pairs = append(pairs, ackGapPair{Gap: gap, Ack: ack})
	}

	ranges, perr := reconstructAckRanges(largest, firstAckRange, pairs)
	if perr != nil {
		return 0, false, perr
	}

	frame := Frame{Kind: FrameKindAck, LargestAcked: largest, AckDelay: delay, Ranges: ranges}

	if ecn {
		ect0, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		ect1, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		rest, pos = rest[n:], pos+n

		ecnCE, n, perr := readVarint(rest)
		if perr != nil {
			return 0, false, perr
		}
		pos += n

		frame.ECN = &ECNCounts{ECT0: ect0, ECT1: ect1, ECNCE: ecnCE}
	}

	res.Acks = append(res.Acks, frame)
	return pos, false, nil
}

// readUint16 reads a fixed 16-bit big-endian field (error codes).
func readUint16(buf []byte) (uint16, int, *ParseError) {
	if len(buf) < 2 {
		return 0, 0, badArg("16-bit field truncated, have %d bytes", len(buf))
	}
	return binary.BigEndian.Uint16(buf[:2]), 2, nil
}

// readMessage reads a varint length prefix followed by exactly that
// many bytes, failing badarg if fewer bytes remain, per spec.md §4.2.
func readMessage(buf []byte, limits Limits) ([]byte, int, *ParseError) {
	length, n, perr := readVarint(buf)
	if perr != nil {
		return nil, 0, perr
	}
	if limits.MaxMessageLen > 0 && length > uint64(limits.MaxMessageLen) {
		return nil, 0, badArg("message length %d exceeds MaxMessageLen %d", length, limits.MaxMessageLen)
	}
	body, n2, perr := readFixed(buf[n:], int(length))
	if perr != nil {
		return nil, 0, perr
	}
	return body, n + n2, nil
}

// readFixed reads exactly n bytes verbatim (connection IDs, n=0 yields
// a zero-length ID).
func readFixed(buf []byte, n int) ([]byte, int, *ParseError) {
	if len(buf) < n {
		return nil, 0, badArg("fixed-length field truncated: need %d bytes, have %d", n, len(buf))
	}
	return buf[:n], n, nil
}

// readToken reads the 128-bit stateless reset token verbatim.
func readToken(buf []byte) ([16]byte, int, *ParseError) {
	var token [16]byte
	if len(buf) < 16 {
		return token, 0, badArg("stateless reset token truncated: have %d bytes", len(buf))
	}
	copy(token[:], buf[:16])
	return token, 16, nil
}

// readNonce reads the 64-bit opaque PATH_CHALLENGE/PATH_RESPONSE nonce.
func readNonce(buf []byte) ([8]byte, int, *ParseError) {
	var nonce [8]byte
	if len(buf) < 8 {
		return nonce, 0, badArg("path nonce truncated: have %d bytes", len(buf))
	}
	copy(nonce[:], buf[:8])
	return nonce, 8, nil
}
