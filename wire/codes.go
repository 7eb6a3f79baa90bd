package wire

import "fmt"

// ConnError is the semantic value a conn_close frame's 16-bit wire error
// code maps to, per spec.md §4.2. Numeric wire values below follow the
// draft-14 QUIC transport error-code registry's ordering; see DESIGN.md
// for the reconstruction note.
type ConnError uint16

const (
	ConnErrorNoError                  ConnError = 0
	ConnErrorInternal                 ConnError = 1
	ConnErrorServerBusy               ConnError = 2
	ConnErrorFlowControl              ConnError = 3
	ConnErrorStreamID                 ConnError = 4
	ConnErrorStreamState              ConnError = 5
	ConnErrorFinalOffset               ConnError = 6
	ConnErrorFrameFormat              ConnError = 7
	ConnErrorTransportParameter       ConnError = 8
	ConnErrorVersionNegotiation       ConnError = 9
	ConnErrorProtocolViolation        ConnError = 10
	ConnErrorUnsolicitedPathResponse  ConnError = 11

	// FrameErrorBandLow/High bound the [100,123] sub-type-carrying band.
	FrameErrorBandLow  ConnError = 100
	FrameErrorBandHigh ConnError = 123
)

var connErrorNames = map[ConnError]string{
	ConnErrorNoError:                 "ok",
	ConnErrorInternal:                "internal",
	ConnErrorServerBusy:              "server_busy",
	ConnErrorFlowControl:             "flow_control",
	ConnErrorStreamID:                "stream_id",
	ConnErrorStreamState:             "stream_state",
	ConnErrorFinalOffset:             "final_offset",
	ConnErrorFrameFormat:             "frame_format",
	ConnErrorTransportParameter:      "transport_param",
	ConnErrorVersionNegotiation:      "version_neg",
	ConnErrorProtocolViolation:       "protocol_violation",
	ConnErrorUnsolicitedPathResponse: "path_response",
}

func (c ConnError) String() string {
	if name, ok := connErrorNames[c]; ok {
		return name
	}
	if c >= FrameErrorBandLow && c <= FrameErrorBandHigh {
		return fmt.Sprintf("frame_error(%d)", uint16(c))
	}
	return fmt.Sprintf("badarg(%d)", uint16(c))
}

// isFrameErrorBand reports whether wireVal is within the [100,123]
// frame-error sub-type band.
func isFrameErrorBand(wireVal uint16) bool {
	return wireVal >= uint16(FrameErrorBandLow) && wireVal <= uint16(FrameErrorBandHigh)
}

// decodeConnError maps a 16-bit wire value to its semantic ConnError,
// failing badarg for anything outside the recognised set or the
// frame-error band.
func decodeConnError(wireVal uint16) (ConnError, *ParseError) {
	if _, ok := connErrorNames[ConnError(wireVal)]; ok {
		return ConnError(wireVal), nil
	}
	if isFrameErrorBand(wireVal) {
		return ConnError(wireVal), nil
	}
	return 0, badArg("unrecognised connection error code %d", wireVal)
}

// AppError is the application-level 16-bit error code carried by
// rst_stream, stop_sending and app_close frames. A single wire value (STOPPING) is
// retained symbolically; every other value is carried opaquely as its
// 16-bit literal for the upstream layer to interpret, per spec.md §4.2.
type AppError struct {
	raw      uint16
	stopping bool
}

// AppErrorStoppingCode is the wire value of the distinguished STOPPING
// application error sentinel (see spec.md §4.2 / Constants in §6).
const AppErrorStoppingCode uint16 = 0

// AppErrorStopping constructs the STOPPING sentinel value.
func AppErrorStopping() AppError {
	return AppError{raw: AppErrorStoppingCode, stopping: true}
}

func decodeAppError(wireVal uint16) AppError {
	if wireVal == AppErrorStoppingCode {
		return AppErrorStopping()
	}
	return AppError{raw: wireVal}
}

// IsStopping reports whether this is the STOPPING sentinel.
func (a AppError) IsStopping() bool { return a.stopping }

// Code returns the opaque 16-bit wire literal.
func (a AppError) Code() uint16 { return a.raw }

func (a AppError) String() string {
	if a.stopping {
		return "STOPPING"
	}
	return fmt.Sprintf("app_error(%d)", a.raw)
}
