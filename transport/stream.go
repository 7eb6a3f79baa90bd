// Package transport adapts wire.Parse to length-prefixed byte streams —
// replay logs, captured-traffic fixtures, or any io.Reader/io.Writer pair
// carrying a sequence of QUIC frame payloads back to back.
//
// wire.Parse itself takes a single already-demultiplexed payload and never
// touches a net.Conn; this package supplies the missing plumbing for the
// common case of payloads arriving one after another on a stream, each
// prefixed with its own length.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/machinefabric/quic-frame-go/wire"
)

// MaxPayloadHardLimit bounds the length prefix regardless of configured
// limits, so a corrupt or hostile stream can never make a reader allocate
// an unbounded buffer.
const MaxPayloadHardLimit = 16 * 1024 * 1024

// PayloadReader reads length-prefixed QUIC frame payloads from a stream.
type PayloadReader struct {
	reader io.Reader
	limits wire.Limits
}

// NewPayloadReader creates a PayloadReader using wire.DefaultLimits.
func NewPayloadReader(r io.Reader) *PayloadReader {
	return &PayloadReader{reader: r, limits: wire.DefaultLimits()}
}

// SetLimits overrides the limits enforced on each read payload.
func (pr *PayloadReader) SetLimits(limits wire.Limits) {
	pr.limits = limits
}

// ReadPayload reads a single length-prefixed payload from the stream.
func (pr *PayloadReader) ReadPayload() ([]byte, error) {
	var lengthBuf [4]byte
	if _, err := io.ReadFull(pr.reader, lengthBuf[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(lengthBuf[:])
	if int(length) > MaxPayloadHardLimit {
		return nil, fmt.Errorf("transport: payload size %d exceeds hard limit %d", length, MaxPayloadHardLimit)
	}
	if pr.limits.MaxPayloadLen > 0 && int(length) > pr.limits.MaxPayloadLen {
		return nil, fmt.Errorf("transport: payload size %d exceeds configured limit %d", length, pr.limits.MaxPayloadLen)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(pr.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReadFrames reads one length-prefixed payload and parses it.
func (pr *PayloadReader) ReadFrames() (*wire.Result, error) {
	payload, err := pr.ReadPayload()
	if err != nil {
		return nil, err
	}
	return wire.ParseWithLimits(payload, pr.limits)
}

// PayloadWriter writes length-prefixed QUIC frame payloads to a stream.
type PayloadWriter struct {
	writer io.Writer
}

// NewPayloadWriter creates a PayloadWriter.
func NewPayloadWriter(w io.Writer) *PayloadWriter {
	return &PayloadWriter{writer: w}
}

// WritePayload writes a single length-prefixed payload to the stream.
func (pw *PayloadWriter) WritePayload(payload []byte) error {
	if len(payload) > MaxPayloadHardLimit {
		return fmt.Errorf("transport: payload size %d exceeds hard limit %d", len(payload), MaxPayloadHardLimit)
	}

	var lengthBuf [4]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(payload)))
	if _, err := pw.writer.Write(lengthBuf[:]); err != nil {
		return err
	}
	_, err := pw.writer.Write(payload)
	return err
}
