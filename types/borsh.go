package types

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// ErrBorshUnderflow is returned when a decode reads past the end of input.
var ErrBorshUnderflow = errors.New("borsh: unexpected end of input")

// ErrBorshTrailingBytes is returned when a decode leaves unconsumed input.
var ErrBorshTrailingBytes = errors.New("borsh: trailing bytes")

// No borsh implementation is retrievable anywhere in the example pack (it is
// a NEAR-specific wire format with no Go ecosystem library among the
// repositories this module was grounded on), so the small subset this
// engine needs — fixed-width integers, byte strings, UTF-8 strings, and
// option/enum discriminants — is implemented directly here against the
// borsh specification (https://borsh.io) and the field order used by the
// original Rust source.

// Writer accumulates a borsh encoding.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) { w.buf.WriteByte(v) }

// WriteU32 appends a little-endian u32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteU64 appends a little-endian u64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteU128 appends a little-endian u128 from a big-endian big.Int-like byte
// slice (at most 16 bytes, big-endian, as produced by U256 encodings).
func (w *Writer) WriteU128(beBytes []byte) {
	var b [16]byte
	// beBytes is big-endian and may be shorter than 16 bytes; right-align then reverse.
	copy(b[16-len(beBytes):], beBytes)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	w.buf.Write(b[:])
}

// WriteFixedBytes appends raw bytes with no length prefix (for fixed-size
// arrays such as Address/H256).
func (w *Writer) WriteFixedBytes(b []byte) { w.buf.Write(b) }

// WriteBytes appends a borsh `Vec<u8>`: u32 length prefix then raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf.Write(b)
}

// WriteString appends a borsh `String`: identical wire shape to WriteBytes.
func (w *Writer) WriteString(s string) { w.WriteBytes([]byte(s)) }

// WriteBool appends a borsh `bool`.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteOption appends the `Some` discriminant and runs write if present is
// true, else appends only the `None` discriminant.
func (w *Writer) WriteOption(present bool, write func()) {
	w.WriteBool(present)
	if present {
		write()
	}
}

// Reader consumes a borsh encoding.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for borsh decoding.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Finish returns ErrBorshTrailingBytes if input was not fully consumed.
func (r *Reader) Finish() error {
	if r.Remaining() != 0 {
		return ErrBorshTrailingBytes
	}
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrBorshUnderflow
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU32 reads a little-endian u32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian u64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadU128 reads a little-endian u128 and returns it as big-endian bytes
// (16 bytes, matching U256's big-endian convention elsewhere in this module).
func (r *Reader) ReadU128() ([]byte, error) {
	b, err := r.take(16)
	if err != nil {
		return nil, err
	}
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = b[15-i]
	}
	return be, nil
}

// ReadFixedBytes reads exactly n raw bytes.
func (r *Reader) ReadFixedBytes(n int) ([]byte, error) { return r.take(n) }

// ReadBytes reads a borsh `Vec<u8>`.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return r.take(int(n))
}

// ReadString reads a borsh `String`.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBool reads a borsh `bool`.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
