package classfile

import (
	"encoding/binary"
	"fmt"
)

// reader is a cursor over a borrowed buffer. The first failed read sticks:
// every later read returns zero values and err keeps the first cause.
type reader struct {
	buf []byte
	pos int
	err error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.buf)-r.pos < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, %d remain", ErrTruncated, n, r.pos, len(r.buf)-r.pos)
		return false
	}
	return true
}

// reserve fails with ErrTruncated when count records of at least minSize
// bytes each cannot fit in what is left. It does not advance the cursor.
func (r *reader) reserve(count, minSize int) bool {
	if r.err != nil {
		return false
	}
	if count*minSize > len(r.buf)-r.pos {
		r.err = fmt.Errorf("%w: %d records need at least %d bytes at offset %d, %d remain",
			ErrTruncated, count, count*minSize, r.pos, len(r.buf)-r.pos)
		return false
	}
	return true
}

// readBigEndian reads the next width bytes (1, 2, 4 or 8) as a big-endian
// unsigned integer.
func (r *reader) readBigEndian(width int) uint64 {
	if !r.need(width) {
		return 0
	}
	b := r.buf[r.pos : r.pos+width]
	r.pos += width
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func (r *reader) readU1() uint8 {
	return uint8(r.readBigEndian(1))
}

func (r *reader) readU2() uint16 {
	return uint16(r.readBigEndian(2))
}

func (r *reader) readU4() uint32 {
	return uint32(r.readBigEndian(4))
}

func (r *reader) readU8() uint64 {
	return r.readBigEndian(8)
}

// readBytes borrows the next n bytes. The returned slice aliases the buffer
// and is capped so appends cannot clobber what follows it.
func (r *reader) readBytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) skip(n int) {
	if !r.need(n) {
		return
	}
	r.pos += n
}

func (r *reader) position() int {
	return r.pos
}

func (r *reader) remaining() []byte {
	return r.buf[r.pos:]
}
