// Package framelog renders a wire.Result or parse failure as a compact
// CBOR-encoded summary for structured log sinks. It never re-encodes
// QUIC wire bytes — the parser's "no encoding" non-goal stays intact —
// it only serializes the already-decoded Go records for observability,
// the way cbor.EncodeFrame journals a protocol frame for transport but
// here the output is a debug artifact, not data sent back over QUIC.
package framelog

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/machinefabric/quic-frame-go/wire"
)

// Summary is the CBOR-encodable shape emitted for a successful parse.
type Summary struct {
	FrameCount int      `cbor:"frames"`
	AckCount   int      `cbor:"acks"`
	TLSCount   int      `cbor:"tls"`
	Kinds      []string `cbor:"kinds"`
}

// Encode renders a compact summary of a parsed Result.
func Encode(res *wire.Result) ([]byte, error) {
	kinds := make([]string, 0, len(res.Frames)+len(res.Acks)+len(res.TLS))
	for _, f := range res.Frames {
		kinds = append(kinds, f.Kind.String())
	}
	for _, f := range res.Acks {
		kinds = append(kinds, f.Kind.String())
	}
	for _, f := range res.TLS {
		kinds = append(kinds, f.Kind.String())
	}

	s := Summary{
		FrameCount: len(res.Frames),
		AckCount:   len(res.Acks),
		TLSCount:   len(res.TLS),
		Kinds:      kinds,
	}
	return cbor.Marshal(s)
}

// FailureSummary is the CBOR-encodable shape emitted for a failed parse.
type FailureSummary struct {
	Kind   string `cbor:"kind"`
	Detail string `cbor:"detail"`
}

// EncodeError renders a compact summary of a parse failure. Returns nil
// if err is not a *wire.ParseError (nothing this package can summarize).
func EncodeError(err error) ([]byte, error) {
	perr, ok := err.(*wire.ParseError)
	if !ok {
		return nil, nil
	}
	return cbor.Marshal(FailureSummary{Kind: perr.Kind.String(), Detail: perr.Detail})
}
