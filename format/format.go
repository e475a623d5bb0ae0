package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/jclass/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *java.Class) error
}

// New returns the encoder registered under name, or nil.
func New(name string, w io.Writer) Encoder {
	switch name {
	case "line":
		return NewLineEncoder(w)
	case "json":
		return NewJSONEncoder(w)
	case "zones":
		return NewZoneEncoder(w)
	default:
		return nil
	}
}
