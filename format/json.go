package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jclass/java"
)

type JSONEncoder struct {
	w     io.Writer
	class *java.Class
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *java.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name              string       `json:"name"`
	SimpleName        string       `json:"simpleName"`
	Package           string       `json:"package"`
	SuperClass        string       `json:"superClass,omitempty"`
	Visibility        string       `json:"visibility"`
	Kind              string       `json:"kind"`
	Modifiers         []string     `json:"modifiers,omitempty"`
	Version           jsonVersion  `json:"version"`
	UnknownAttributes int          `json:"unknownAttributes,omitempty"`
	Fields            []jsonField  `json:"fields,omitempty"`
	Methods           []jsonMethod `json:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name              string   `json:"name"`
	Type              jsonType `json:"type"`
	Visibility        string   `json:"visibility"`
	Modifiers         []string `json:"modifiers,omitempty"`
	UnknownAttributes int      `json:"unknownAttributes,omitempty"`
}

type jsonMethod struct {
	Name              string    `json:"name"`
	Descriptor        string    `json:"descriptor"`
	Visibility        string    `json:"visibility"`
	Modifiers         []string  `json:"modifiers,omitempty"`
	Code              *jsonSpan `json:"code,omitempty"`
	UnknownAttributes int       `json:"unknownAttributes,omitempty"`
}

type jsonType struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

type jsonSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	return jsonClass{
		Name:       c.Name,
		SimpleName: c.SimpleName(),
		Package:    c.Package(),
		SuperClass: c.SuperName,
		Visibility: c.Visibility(),
		Kind:       c.Kind(),
		Modifiers:  c.AccessFlags.Modifiers(),
		Version: jsonVersion{
			Major: c.MajorVersion,
			Minor: c.MinorVersion,
		},
		UnknownAttributes: c.UnknownAttributes,
		Fields:            e.buildFields(),
		Methods:           e.buildMethods(),
	}
}

func (e *JSONEncoder) buildFields() []jsonField {
	result := make([]jsonField, len(e.class.Fields))
	for i, f := range e.class.Fields {
		result[i] = jsonField{
			Name:              f.Name,
			Type:              buildType(f.Type),
			Visibility:        f.AccessFlags.Visibility(),
			Modifiers:         f.AccessFlags.Modifiers(),
			UnknownAttributes: f.UnknownAttributes,
		}
	}
	return result
}

func buildType(t java.Type) jsonType {
	jt := jsonType{Name: t.String(), Descriptor: t.Descriptor()}
	if arr, ok := t.(*java.ArrayReference); ok {
		jt.Name = arr.Innermost().String()
		jt.ArrayDepth = arr.Dimensions()
	}
	return jt
}

func (e *JSONEncoder) buildMethods() []jsonMethod {
	result := make([]jsonMethod, len(e.class.Methods))
	for i, m := range e.class.Methods {
		result[i] = jsonMethod{
			Name:              m.Name,
			Descriptor:        m.Descriptor,
			Visibility:        m.AccessFlags.Visibility(),
			Modifiers:         m.AccessFlags.Modifiers(),
			UnknownAttributes: m.UnknownAttributes,
		}
		if m.Code != nil {
			result[i].Code = &jsonSpan{Offset: m.Code.Span.Offset, Length: m.Code.Span.Length}
		}
	}
	return result
}
