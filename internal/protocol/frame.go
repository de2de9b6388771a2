package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DefaultMaxPayload bounds the declared length accepted by Read.
const DefaultMaxPayload = 1 << 20

// lineTerminator ends the length header. Read also accepts a bare "\n".
const lineTerminator = "\r\n"

// Write encodes the envelope and writes it to w as
//
//	<decimal length>\r\n<payload>
//
// using two consecutive writes. It returns the payload length.
func (e *Envelope) Write(w io.Writer) (int, error) {
	bp := getScratch(0)
	defer putScratch(bp)

	data, err := e.AppendBinary(*bp)
	if err != nil {
		return 0, err
	}
	*bp = data

	header := strconv.Itoa(len(data)) + lineTerminator
	if _, err := io.WriteString(w, header); err != nil {
		return 0, fmt.Errorf("%w: write header: %w", ErrIO, err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("%w: write payload: %w", ErrIO, err)
	}
	return len(data), nil
}

// Read reads one framed envelope from r with the default payload limit.
//
// r must be the same reader for the whole connection: bytes it buffered past
// this frame belong to the next one.
func Read(r *bufio.Reader) (*Envelope, error) {
	return ReadLimit(r, DefaultMaxPayload)
}

// ReadLimit reads one framed envelope, rejecting declared lengths above limit.
//
// A clean end of stream before the header returns an error wrapping both
// ErrIO and io.EOF. A malformed header or a short payload returns ErrFraming;
// after that the stream position is unknown and the connection must be closed.
func ReadLimit(r *bufio.Reader, limit int) (*Envelope, error) {
	n, err := readLength(r, limit)
	if err != nil {
		return nil, err
	}

	bp := getScratch(n)
	defer putScratch(bp)

	if _, err := io.ReadFull(r, *bp); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: payload shorter than declared %d bytes: %w", ErrFraming, n, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("%w: read payload: %w", ErrIO, err)
	}

	e := &Envelope{}
	if err := e.UnmarshalBinary(*bp); err != nil {
		return nil, err
	}
	return e, nil
}

func readLength(r *bufio.Reader, limit int) (int, error) {
	line, err := r.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && len(line) == 0:
		return 0, fmt.Errorf("%w: %w", ErrIO, io.EOF)
	case errors.Is(err, io.EOF):
		return 0, fmt.Errorf("%w: unterminated length line: %w", ErrFraming, io.ErrUnexpectedEOF)
	case errors.Is(err, bufio.ErrBufferFull):
		return 0, fmt.Errorf("%w: length line too long", ErrFraming)
	default:
		return 0, fmt.Errorf("%w: read header: %w", ErrIO, err)
	}

	header := line[:len(line)-1]
	if len(header) > 0 && header[len(header)-1] == '\r' {
		header = header[:len(header)-1]
	}
	digits := bytes.Trim(header, " \t")
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: empty length line", ErrFraming)
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return 0, fmt.Errorf("%w: invalid length %q", ErrFraming, header)
		}
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil || n > int64(limit) {
		return 0, fmt.Errorf("%w: length %s exceeds limit %d", ErrFraming, digits, limit)
	}
	return int(n), nil
}
