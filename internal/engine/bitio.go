package engine

// ByteSource provides the next byte of input on demand. A failing read
// (EOF included) is reported through err; the caller treats it as a
// silent zero byte rather than a fatal error, per the deliberate
// I/O-errors-are-swallowed design.
type ByteSource interface {
	ReadByte() (byte, error)
}

// ByteSink accepts one output byte at a time. Writes are fire-and-forget:
// nothing observes whether they succeed.
type ByteSink interface {
	WriteByte(b byte)
}

// InputBuffer holds one pending input byte and the count of bits still
// unread from it. idx is 0..8; 0 means the byte is exhausted and the
// next read refills from the source.
type InputBuffer struct {
	byte byte
	idx  uint8
}

// NewInputBuffer returns an empty input buffer; its first read always
// refills from the source.
func NewInputBuffer() *InputBuffer {
	return &InputBuffer{}
}

// ReadBit returns the next input bit, MSB first, refilling from src
// whenever the current byte is exhausted. A source read failure yields
// a zero byte rather than propagating the error.
func (b *InputBuffer) ReadBit(src ByteSource) bool {
	if b.idx == 0 {
		b.idx = 8
		next, err := src.ReadByte()
		if err != nil {
			next = 0
		}
		b.byte = next
	}
	b.idx--
	return b.byte&(1<<b.idx) != 0
}

// OutputBuffer holds one in-progress output byte and the count of bit
// slots still free in it. idx is 1..8; it reaching 0 means the byte is
// complete and gets flushed to the sink.
type OutputBuffer struct {
	byte byte
	idx  uint8
}

// NewOutputBuffer returns an empty output buffer, ready to accept eight
// bits before its first flush.
func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{idx: 8}
}

// WriteBit appends one bit, MSB first, flushing a completed byte to
// sink and resetting for the next one. Bits left over when the program
// ends are simply discarded — there is no explicit end-of-stream flush.
func (b *OutputBuffer) WriteBit(sink ByteSink, bit bool) {
	b.idx--
	if bit {
		b.byte |= 1 << b.idx
	}
	if b.idx == 0 {
		sink.WriteByte(b.byte)
		b.byte = 0
		b.idx = 8
	}
}
