package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jclass/java"
)

// LineEncoder writes one tab separated line for the class and for each of
// its fields and methods.
type LineEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
		c.Kind(),
		c.Name,
		c.SuperName,
		strings.Join(c.AccessFlags.Modifiers(), " "),
	)

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			strings.Join(f.AccessFlags.Modifiers(), " "),
		)
	}

	for _, m := range c.Methods {
		code := 0
		if m.Code != nil {
			code = len(m.Code.Bytes)
		}
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%d\n",
			m.Name,
			m.Descriptor,
			strings.Join(m.AccessFlags.Modifiers(), " "),
			code,
		)
	}

	return []byte(sb.String()), nil
}
