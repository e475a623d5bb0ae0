package classfile

import "errors"

// Error kinds reported by the decoder. Every failure returned by Parse (and by
// the java package built on top of it) wraps exactly one of these, so callers
// can classify with errors.Is.
var (
	ErrTruncated           = errors.New("truncated class file")
	ErrInvalidTag          = errors.New("invalid constant pool tag")
	ErrBadIndex            = errors.New("bad constant pool index")
	ErrMalformedDescriptor = errors.New("malformed descriptor")
	ErrUnsupported         = errors.New("unsupported construct")
)
