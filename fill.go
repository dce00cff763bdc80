package headerscan

import "io"

// DefaultChunkSize is the number of bytes a ReaderSource reads per Fill when ChunkSize is unset
const DefaultChunkSize = 4096

// FillSource supplies more bytes for a header block.
type FillSource interface {
	// Fill returns buf extended with newly available bytes and whether no more bytes will ever arrive.
	// The returned slice must hold the same bytes as buf up to len(buf).
	Fill(buf []byte) ([]byte, bool, error)
}

// ReaderSource is a FillSource backed by an io.Reader
type ReaderSource struct {
	R         io.Reader
	ChunkSize int
	eof       bool
}

// Fill reads up to ChunkSize bytes from R onto the end of buf
func (r *ReaderSource) Fill(buf []byte) ([]byte, bool, error) {
	if r.eof {
		return buf, true, nil
	}
	size := r.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	if cap(buf)-len(buf) < size {
		grown := make([]byte, len(buf), 2*cap(buf)+size)
		copy(grown, buf)
		buf = grown
	}
	n, err := r.R.Read(buf[len(buf) : len(buf)+size])
	buf = buf[:len(buf)+n]
	if err == io.EOF {
		r.eof = true
		return buf, true, nil
	}
	return buf, false, err
}
