package java

import (
	"cmp"
	"slices"

	"github.com/dhamidi/jclass/classfile"
)

type Region struct {
	Name string
	Span classfile.Span
}

func buildRegions(cf *classfile.ClassFile, class *Class) []Region {
	regions := []Region{
		{Name: "header", Span: cf.HeaderSpan},
		{Name: "constant pool", Span: cf.ConstantPoolSpan},
	}
	for _, f := range class.Fields {
		regions = append(regions, Region{Name: "field " + f.Name, Span: f.Span})
	}
	for _, m := range class.Methods {
		regions = append(regions, Region{Name: "method " + m.Name, Span: m.Span})
		if m.Code != nil {
			regions = append(regions, Region{Name: "code " + m.Name, Span: m.Code.Span})
		}
	}
	slices.SortStableFunc(regions, func(a, b Region) int {
		return cmp.Compare(a.Span.Offset, b.Span.Offset)
	})
	return regions
}
