// Package wire decodes the frame sequence carried in the decrypted
// payload of a single QUIC (draft-14, version 1) packet.
//
// Parse is the entry point; ParseWithLimits is the same with explicit
// size caps. Parsing is a pure function of the input: no I/O, no
// shared state, safe to call concurrently from independent goroutines
// on independent inputs. Packet header parsing, decryption, congestion
// control, loss detection, stream reassembly/flow control, the TLS 1.3
// handshake itself, and UDP I/O all live outside this package.
package wire
