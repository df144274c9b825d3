// Package bytecode provides the growable, backpatchable byte buffer the
// generator emits into. It knows nothing about opcodes or tokens; it
// only knows how to append little-endian integers, remember the current
// write position, and rewrite two bytes already written.
package bytecode

import "encoding/binary"

const initialCapacity = 64

// Writer is a growable byte buffer with backpatch support. The zero
// value is an empty Writer that allocates on its first emit; New
// pre-allocates the initial capacity.
type Writer struct {
	buf []byte
}

// New returns an empty Writer with its initial capacity pre-allocated.
func New() *Writer {
	return &Writer{buf: make([]byte, 0, initialCapacity)}
}

// Here returns the current write position, i.e. the offset the next
// emitted byte will land at.
func (w *Writer) Here() int {
	return len(w.buf)
}

// Len is an alias for Here kept for readability at call sites that care
// about size rather than position.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) grow(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	newCap := cap(w.buf)
	if newCap == 0 {
		newCap = initialCapacity
	}
	for newCap-len(w.buf) < n {
		newCap *= 2
	}
	grown := make([]byte, len(w.buf), newCap)
	copy(grown, w.buf)
	w.buf = grown
}

// EmitU8 appends a single byte and returns its offset.
func (w *Writer) EmitU8(b byte) int {
	w.grow(1)
	pc := len(w.buf)
	w.buf = append(w.buf, b)
	return pc
}

// EmitI16LE appends a signed 16-bit value in little-endian order and
// returns the offset of its first byte.
func (w *Writer) EmitI16LE(v int16) int {
	w.grow(2)
	pc := len(w.buf)
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	w.buf = append(w.buf, tmp[:]...)
	return pc
}

// EmitI32LE appends a signed 32-bit value in little-endian order and
// returns the offset of its first byte.
func (w *Writer) EmitI32LE(v int32) int {
	w.grow(4)
	pc := len(w.buf)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	w.buf = append(w.buf, tmp[:]...)
	return pc
}

// PatchI16LE overwrites the two bytes at pc with v. pc must have been
// returned by a prior EmitI16LE call on this Writer.
func (w *Writer) PatchI16LE(pc int, v int16) {
	binary.LittleEndian.PutUint16(w.buf[pc:pc+2], uint16(v))
}

// Truncate drops the buffer back to length n, discarding everything
// emitted after it. Used by CONSTANT to excise a preceding LIT.
func (w *Writer) Truncate(n int) {
	w.buf = w.buf[:n]
}

// Bytes returns the written bytes without detaching them; the Writer
// remains usable and owns the backing array.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Detach hands ownership of the written bytes to the caller and resets
// the Writer to empty. After Detach the returned slice is the sole
// owner of its backing array.
func (w *Writer) Detach() []byte {
	out := w.buf
	w.buf = nil
	return out
}
