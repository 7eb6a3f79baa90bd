package wire

import "fmt"

// FrameKind tags the variant a decoded Frame holds. Padding frames are
// consumed by the dispatcher but never emitted, so there is no
// FrameKindPadding value here — see decode.go.
type FrameKind uint8

const (
	FrameKindPing FrameKind = iota
	FrameKindRstStream
	FrameKindConnClose
	FrameKindAppClose
	FrameKindMaxData
	FrameKindMaxStreamData
	FrameKindMaxStreamID
	FrameKindDataBlocked
	FrameKindStreamDataBlocked
	FrameKindStreamIDBlocked
	FrameKindNewConnID
	FrameKindStopSending
	FrameKindRetireConnID
	FrameKindPathChallenge
	FrameKindPathResponse
	FrameKindCrypto
	FrameKindStreamOpen
	FrameKindStreamData
	FrameKindStreamClose
	FrameKindAck
)

func (k FrameKind) String() string {
	switch k {
	case FrameKindPing:
		return "ping"
	case FrameKindRstStream:
		return "rst_stream"
	case FrameKindConnClose:
		return "conn_close"
	case FrameKindAppClose:
		return "app_close"
	case FrameKindMaxData:
		return "max_data"
	case FrameKindMaxStreamData:
		return "max_stream_data"
	case FrameKindMaxStreamID:
		return "max_stream_id"
	case FrameKindDataBlocked:
		return "data_blocked"
	case FrameKindStreamDataBlocked:
		return "stream_data_blocked"
	case FrameKindStreamIDBlocked:
		return "stream_id_blocked"
	case FrameKindNewConnID:
		return "new_conn_id"
	case FrameKindStopSending:
		return "stop_sending"
	case FrameKindRetireConnID:
		return "retire_conn_id"
	case FrameKindPathChallenge:
		return "path_challenge"
	case FrameKindPathResponse:
		return "path_response"
	case FrameKindCrypto:
		return "crypto"
	case FrameKindStreamOpen:
		return "stream_open"
	case FrameKindStreamData:
		return "stream_data"
	case FrameKindStreamClose:
		return "stream_close"
	case FrameKindAck:
		return "ack_frame"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// StreamOwner is the origin of a stream, derived from bit 0 of the
// stream ID. Never stored independently of StreamID — always
// recomputed by deriveStreamMeta.
type StreamOwner uint8

const (
	StreamOwnerClient StreamOwner = 0
	StreamOwnerServer StreamOwner = 1
)

func (o StreamOwner) String() string {
	if o == StreamOwnerServer {
		return "server"
	}
	return "client"
}

// StreamType is the directionality of a stream, derived from bit 1 of
// the stream ID.
type StreamType uint8

const (
	StreamTypeBidi StreamType = 0
	StreamTypeUni  StreamType = 1
)

func (t StreamType) String() string {
	if t == StreamTypeUni {
		return "uni"
	}
	return "bidi"
}

// deriveStreamMeta recomputes (owner, type) from the two low bits of a
// 62-bit stream ID. Per spec.md §3, these are derived fields and must
// never be carried separately from StreamID.
func deriveStreamMeta(streamID uint64) (StreamOwner, StreamType) {
	return StreamOwner(streamID & 0x1), StreamType((streamID >> 1) & 0x1)
}

// ECNCounts holds the three ECN marking counters carried by an
// ECN-variant ack_frame, in the wire order (ect0, ect1, ecn_ce).
type ECNCounts struct {
	ECT0  uint64
	ECT1  uint64
	ECNCE uint64
}

// AckRange is an inclusive, ascending packet-number interval
// [Low, High] acknowledged by an ack_frame.
type AckRange struct {
	Low  uint64
	High uint64
}

// Frame is a tagged record for every frame kind this package decodes.
// A single struct (rather than one Go type per frame kind) is used
// because decoders populate fields incrementally while walking the
// payload; see SPEC_FULL.md §3 for the rationale. Only the fields
// relevant to Kind are meaningful — see the table in spec.md §3.
type Frame struct {
	Kind FrameKind

	// rst_stream, stop_sending, max_stream_data, stream_data_blocked,
	// and all stream_* frames; stream_id_blocked sets StreamID only.
	StreamID    uint64
	StreamOwner StreamOwner
	StreamType  StreamType

	AppErrorCode AppError     // rst_stream, stop_sending, app_close
	FinalOffset  uint64       // rst_stream
	ErrorCode    ConnError    // conn_close
	ErrorMessage []byte       // conn_close, app_close (app_error carried in AppErrorCode)

	MaxData       uint64 // max_data
	MaxStreamData uint64 // max_stream_data
	MaxStreamID   uint64 // max_stream_id

	Offset uint64 // data_blocked, stream_data_blocked, crypto, stream_*

	Sequence             uint64   // new_conn_id, retire_conn_id
	ConnID               []byte   // new_conn_id
	StatelessResetToken  [16]byte // new_conn_id

	Nonce [8]byte // path_challenge, path_response

	Length  uint64 // crypto
	Payload []byte // crypto payload, stream_* data

	LargestAcked uint64
	AckDelay     uint64
	Ranges       []AckRange
	ECN          *ECNCounts
}

// Result is the parser's output: three ordered lists in wire order.
type Result struct {
	Frames []Frame // regular frames (everything but ack_frame and crypto)
	Acks   []Frame // ack_frame only
	TLS    []Frame // crypto only
}
