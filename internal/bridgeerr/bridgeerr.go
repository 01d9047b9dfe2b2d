// Package bridgeerr classifies errors into the kinds spelled out by the
// error handling design: configuration errors are fatal at startup,
// transport/protocol/crypto errors are per-operation and recoverable by
// dropping the offending frame, row, or uplink.
package bridgeerr

import "github.com/pkg/errors"

// Kind tags one of the recognized error categories.
type Kind uint8

const (
	// Config errors are fatal at startup.
	Config Kind = iota
	// Transport covers UDP/gRPC IO failures.
	Transport
	// Protocol covers frame/row parse failures.
	Protocol
	// Crypto covers signing failures.
	Crypto
	// RPC covers a remote router's RPC-level failure.
	RPC
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Transport:
		return "transport"
	case Protocol:
		return "protocol"
	case Crypto:
		return "crypto"
	case RPC:
		return "rpc"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this kind should terminate the process
// rather than be logged and dropped. Only configuration errors are fatal
// by classification; transport errors on the Gateway's own UDP socket and
// on the Router's routing stream are fatal too, but that is a property of
// where they occur, not of Kind alone: callers at those two sites wrap
// the error as Transport and return it from their run loops, which is
// what ends the process.
func (k Kind) Fatal() bool {
	return k == Config
}

// wrapped associates a Kind with an underlying error.
type wrapped struct {
	kind Kind
	err  error
}

func (w *wrapped) Error() string { return w.kind.String() + ": " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

// Wrap tags err with kind, preserving it for errors.As/errors.Is.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrapped{kind: kind, err: errors.Wrap(err, msg)}
}

// KindOf extracts the Kind tag from err, if any was attached via Wrap.
func KindOf(err error) (Kind, bool) {
	var w *wrapped
	if errors.As(err, &w) {
		return w.kind, true
	}
	return 0, false
}
