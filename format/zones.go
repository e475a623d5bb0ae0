package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jclass/java"
)

// ZoneEncoder lists the named byte regions of a class, one
// "offset\tlength\tname" line each, for hex views that highlight zones.
type ZoneEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewZoneEncoder(w io.Writer) *ZoneEncoder {
	return &ZoneEncoder{w: w}
}

func (e *ZoneEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ZoneEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.class.Regions() {
		fmt.Fprintf(&sb, "%08x\t%d\t%s\n", r.Span.Offset, r.Span.Length, r.Name)
	}
	return []byte(sb.String()), nil
}
