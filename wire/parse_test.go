package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1, spec.md §8: single PING.
func TestParsePing(t *testing.T) {
	res, err := Parse([]byte{0x07})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	assert.Equal(t, FrameKindPing, res.Frames[0].Kind)
	assert.Empty(t, res.Acks)
	assert.Empty(t, res.TLS)
}

// Scenario 2, spec.md §8: MAX_DATA = 1000.
func TestParseMaxData(t *testing.T) {
	res, err := Parse([]byte{0x04, 0x43, 0xE8})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	assert.Equal(t, FrameKindMaxData, res.Frames[0].Kind)
	assert.Equal(t, uint64(1000), res.Frames[0].MaxData)
}

// Scenario 3, spec.md §8: ACK (no ECN), largest=10.
func TestParseAckNoECN(t *testing.T) {
	res, err := Parse([]byte{0x1A, 10, 0, 1, 2, 1, 0})
	require.NoError(t, err)
	require.Len(t, res.Acks, 1)
	ack := res.Acks[0]
	assert.Equal(t, uint64(10), ack.LargestAcked)
	assert.Equal(t, uint64(0), ack.AckDelay)
	assert.Equal(t, []AckRange{{Low: 5, High: 5}, {Low: 8, High: 10}}, ack.Ranges)
	assert.Nil(t, ack.ECN)
	assert.Empty(t, res.Frames)
	assert.Empty(t, res.TLS)
}

func TestParseAckWithECN(t *testing.T) {
	res, err := Parse([]byte{0x1B, 10, 0, 1, 2, 1, 0, 5, 6, 7})
	require.NoError(t, err)
	require.Len(t, res.Acks, 1)
	require.NotNil(t, res.Acks[0].ECN)
	assert.Equal(t, ECNCounts{ECT0: 5, ECT1: 6, ECNCE: 7}, *res.Acks[0].ECN)
}

// Scenario 4, spec.md §8: CRYPTO frame.
func TestParseCrypto(t *testing.T) {
	res, err := Parse([]byte{0x18, 0x00, 0x03, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	require.Len(t, res.TLS, 1)
	f := res.TLS[0]
	assert.Equal(t, FrameKindCrypto, f.Kind)
	assert.Equal(t, uint64(0), f.Offset)
	assert.Equal(t, uint64(3), f.Length)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, f.Payload)
	assert.Empty(t, res.Frames)
	assert.Empty(t, res.Acks)
}

// Scenario 5, spec.md §8: STREAM with FIN, OFF=0, LEN=0, stream_id=4, data "hi".
func TestParseStreamToEndWithFin(t *testing.T) {
	res, err := Parse([]byte{0x11, 0x04, 'h', 'i'})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	f := res.Frames[0]
	assert.Equal(t, FrameKindStreamClose, f.Kind)
	assert.Equal(t, uint64(4), f.StreamID)
	assert.Equal(t, uint64(0), f.Offset)
	assert.Equal(t, StreamOwnerClient, f.StreamOwner)
	assert.Equal(t, StreamTypeBidi, f.StreamType)
	assert.Equal(t, []byte("hi"), f.Payload)
}

// spec.md §8 scenario 6 describes appending a stray 0x07 after scenario
// 5's bytes and expecting protocol_violation. Under the consume-the-
// remainder rule normatively specified in spec.md §4.1/§4.3 for a LEN=0
// stream frame, that stray byte is *part of* the remainder, not trailing
// garbage after it — there is no way for a correct decoder to tell the
// two apart from a single decrypted payload alone. See DESIGN.md's
// resolution of this scenario: ParseWithLimits checks for trailing bytes
// after a terminal frame, but the LEN=0 stream frame is the only terminal
// frame and it can never leave a trailing byte by construction, so the
// stray byte is returned as part of the stream data.
func TestParseStreamToEndAbsorbsTrailingBytes(t *testing.T) {
	res, err := Parse([]byte{0x11, 0x04, 'h', 'i', 0x07})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	assert.Equal(t, []byte("hi\x07"), res.Frames[0].Payload)
}

func TestParseEmptyPayload(t *testing.T) {
	res, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Frames)
	assert.Empty(t, res.Acks)
	assert.Empty(t, res.TLS)
}

func TestParseSinglePaddingByte(t *testing.T) {
	res, err := Parse([]byte{0x00})
	require.NoError(t, err)
	assert.Empty(t, res.Frames)
	assert.Empty(t, res.Acks)
	assert.Empty(t, res.TLS)
}

func TestParseUnknownFrameTypeIsBadArg(t *testing.T) {
	_, err := Parse([]byte{0x1C})
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, BadArg, perr.Kind)
}

func TestParseTruncatedFrameIsBadArg(t *testing.T) {
	// MAX_DATA declares a 2-byte varint but only one byte follows.
	_, err := Parse([]byte{0x04, 0x43})
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, BadArg, perr.Kind)
}

func TestParseBoundedStreamFrameContinuesParsing(t *testing.T) {
	// STREAM, OFF=0, LEN=1, FIN=0, stream_id=4, length=2, data "hi",
	// followed by a PING — the bounded frame must not be treated as
	// terminal.
	res, err := Parse([]byte{0x12, 0x04, 0x02, 'h', 'i', 0x07})
	require.NoError(t, err)
	require.Len(t, res.Frames, 2)
	assert.Equal(t, FrameKindStreamOpen, res.Frames[0].Kind)
	assert.Equal(t, []byte("hi"), res.Frames[0].Payload)
	assert.Equal(t, FrameKindPing, res.Frames[1].Kind)
}

func TestParseRstStream(t *testing.T) {
	// type 0x01, stream_id=1 (1-byte varint), app_error=0 (STOPPING),
	// final_offset=10 (1-byte varint).
	res, err := Parse([]byte{0x01, 0x01, 0x00, 0x00, 10})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	f := res.Frames[0]
	assert.Equal(t, FrameKindRstStream, f.Kind)
	assert.Equal(t, uint64(1), f.StreamID)
	assert.True(t, f.AppErrorCode.IsStopping())
	assert.Equal(t, uint64(10), f.FinalOffset)
}

func TestParseConnClose(t *testing.T) {
	// type 0x02, error_code=10 (PROTOCOL_VIOLATION), message "no".
	res, err := Parse([]byte{0x02, 0x00, 10, 0x02, 'n', 'o'})
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	f := res.Frames[0]
	assert.Equal(t, FrameKindConnClose, f.Kind)
	assert.Equal(t, ConnErrorProtocolViolation, f.ErrorCode)
	assert.Equal(t, []byte("no"), f.ErrorMessage)
}

func TestParseConnCloseUnknownErrorCodeIsBadArg(t *testing.T) {
	res, err := Parse([]byte{0x02, 0x00, 99, 0x00})
	assert.Nil(t, res)
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, BadArg, perr.Kind)
}

func TestParseConnCloseFrameErrorBand(t *testing.T) {
	res, err := Parse([]byte{0x02, 0x00, 110, 0x00})
	require.NoError(t, err)
	assert.Equal(t, ConnError(110), res.Frames[0].ErrorCode)
}

func TestParseNewConnID(t *testing.T) {
	connID := []byte{1, 2, 3, 4}
	payload := []byte{0x0B, 0x04 /* length=4 */, 0x07 /* sequence=7 */}
	payload = append(payload, connID...)
	token := make([]byte, 16)
	for i := range token {
		token[i] = byte(i)
	}
	payload = append(payload, token...)

	res, err := Parse(payload)
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	f := res.Frames[0]
	assert.Equal(t, FrameKindNewConnID, f.Kind)
	assert.Equal(t, uint64(7), f.Sequence)
	assert.Equal(t, connID, f.ConnID)
	var wantToken [16]byte
	copy(wantToken[:], token)
	assert.Equal(t, wantToken, f.StatelessResetToken)
}

func TestParseRejectsPayloadOverLimit(t *testing.T) {
	_, err := ParseWithLimits([]byte{0x07, 0x07}, NewLimits(WithMaxPayloadLen(1)))
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, BadArg, perr.Kind)
}

func TestParseEveryPrefixOfAWellFormedPayloadFailsOrSucceeds(t *testing.T) {
	// Fuzz-style property from spec.md §8: truncating a well-formed
	// payload at any byte offset must never panic, and must either fail
	// (almost always BadArg/ProtocolViolation) or — only when the prefix
	// happens to itself be a complete, valid payload — succeed.
	full := []byte{0x1A, 10, 0, 1, 2, 1, 0} // scenario 3's ACK frame
	for i := 1; i < len(full); i++ {
		prefix := full[:i]
		res, err := Parse(prefix)
		if err == nil {
			t.Logf("prefix of length %d happened to parse: %+v", i, res)
			continue
		}
		_, ok := err.(*ParseError)
		assert.True(t, ok, "error at prefix length %d must be a *ParseError", i)
	}
}
