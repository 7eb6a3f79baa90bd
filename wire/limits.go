package wire

import (
	"os"
	"strconv"
)

// Default soft caps. The parser still consumes the entire payload for
// everything within these bounds; they exist only to give a host
// application a way to bound allocation before the fact, the way
// cap.DefaultRegistryConfig bounds its registry client from environment
// variables.
const (
	DefaultMaxMessageLen = 65536
	DefaultMaxPayloadLen = 1 << 20

	envMaxMessage = "QUICFRAME_MAX_MESSAGE"
	envMaxPayload = "QUICFRAME_MAX_PAYLOAD"
)

// Limits bounds a single Parse call. Zero values disable the
// corresponding check.
type Limits struct {
	MaxMessageLen int
	MaxPayloadLen int
}

// DefaultLimits returns QUICFRAME_MAX_MESSAGE / QUICFRAME_MAX_PAYLOAD
// from the environment, falling back to fixed defaults when unset or
// unparsable, mirroring cap.DefaultRegistryConfig's env-var-or-default
// pattern.
func DefaultLimits() Limits {
	return Limits{
		MaxMessageLen: intEnvOrDefault(envMaxMessage, DefaultMaxMessageLen),
		MaxPayloadLen: intEnvOrDefault(envMaxPayload, DefaultMaxPayloadLen),
	}
}

func intEnvOrDefault(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// LimitsOption is a functional option for building a Limits value,
// following the teacher's RegistryOption pattern.
type LimitsOption func(*Limits)

// WithMaxMessageLen overrides the per-message soft cap.
func WithMaxMessageLen(n int) LimitsOption {
	return func(l *Limits) { l.MaxMessageLen = n }
}

// WithMaxPayloadLen overrides the whole-payload soft cap.
func WithMaxPayloadLen(n int) LimitsOption {
	return func(l *Limits) { l.MaxPayloadLen = n }
}

// NewLimits builds a Limits starting from DefaultLimits and applying opts.
func NewLimits(opts ...LimitsOption) Limits {
	l := DefaultLimits()
	for _, opt := range opts {
		opt(&l)
	}
	return l
}
