// Package imageio implements the Image/Frame data containers and the
// image lifecycle operations of sections 3 and 4.3, plus the decoder
// registry named in section 6.
package imageio

import "github.com/pkg/errors"

// Outcome classifies the result of a decode attempt, reported to the
// caller of Load per section 7's Decode error kind.
type Outcome int

const (
	Success Outcome = iota
	Unsupported
	FormatError
	IOError
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Unsupported:
		return "unsupported"
	case FormatError:
		return "format_error"
	case IOError:
		return "io_error"
	default:
		return "unknown"
	}
}

// ErrUnsupported means no registered decoder claimed the source.
var ErrUnsupported = errors.New("imageio: no decoder claimed source")

// ErrFormatError means a decoder claimed the source but its data was
// invalid.
var ErrFormatError = errors.New("imageio: source claimed but invalid")

// ErrIO wraps an underlying I/O failure while probing or decoding.
var ErrIO = errors.New("imageio: i/o failure")

// Classify maps a decode error to the Outcome it represents, unwrapping
// via errors.Cause the way codec/h264 classifies its own errors.
func Classify(err error) Outcome {
	if err == nil {
		return Success
	}
	switch errors.Cause(err) {
	case ErrUnsupported:
		return Unsupported
	case ErrFormatError:
		return FormatError
	case ErrIO:
		return IOError
	default:
		return FormatError
	}
}
