package protocol

import "errors"

// Transport-level failures. They are always fatal for the connection: the
// framing has no resynchronization point, so callers must close the stream.
var (
	ErrIO       = errors.New("io error")
	ErrFraming  = errors.New("framing error")
	ErrEncoding = errors.New("encoding error")
)

// IsFatal reports whether err is an io, framing or encoding failure.
func IsFatal(err error) bool {
	return errors.Is(err, ErrIO) || errors.Is(err, ErrFraming) || errors.Is(err, ErrEncoding)
}
