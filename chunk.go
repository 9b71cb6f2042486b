package libsmf

// This file contains the code for walking the chunks of an SMF file.

import (
	"encoding/binary"
	"fmt"
)

// The size of a chunk's type and length fields.
const chunkHeaderSize = 8

// Holds a chunk's header, and a view of its content within the file data.
type chunk struct {
	// This is 'MThd' or 'MTrk' for chunks we understand.
	ID [4]byte
	// The length of the chunk's content, not including the header.
	Length uint32
	// The offset of the chunk's header in the file data.
	Offset int
	// The chunk's content. This is a sub-slice of the file data, not a copy.
	Data []byte
}

func (c *chunk) String() string {
	return fmt.Sprintf("%q chunk at offset %d, %d bytes", string(c.ID[:]),
		c.Offset, c.Length)
}

// Returns the offset of the first byte of the chunk's content.
func (c *chunk) dataOffset() int {
	return c.Offset + chunkHeaderSize
}

// Walks the chunks in a buffer, in order.
type chunkReader struct {
	buf []byte
	// The offset of the next chunk's header.
	next int
}

func newChunkReader(buf []byte) *chunkReader {
	return &chunkReader{
		buf: buf,
	}
}

// Returns the chunk at the reader's current offset and advances past it.
// Returns an EndOfBuffer error, without advancing, if the chunk's header or
// its declared content don't fit in the buffer.
func (r *chunkReader) nextChunk() (*chunk, error) {
	start := r.next
	remaining := len(r.buf) - start
	if remaining < chunkHeaderSize {
		return nil, &Error{
			Kind:     EndOfBuffer,
			Offset:   start,
			Track:    -1,
			Expected: fmt.Sprintf("%d-byte chunk header", chunkHeaderSize),
			Found:    fmt.Sprintf("%d bytes", remaining),
		}
	}
	var toReturn chunk
	copy(toReturn.ID[:], r.buf[start:start+4])
	toReturn.Length = binary.BigEndian.Uint32(r.buf[start+4 : start+8])
	toReturn.Offset = start
	// Compare in 64 bits so a huge length can't wrap around.
	end := uint64(start) + chunkHeaderSize + uint64(toReturn.Length)
	if end > uint64(len(r.buf)) {
		detail := fmt.Sprintf("%q chunk is truncated", string(toReturn.ID[:]))
		return nil, &Error{
			Kind:     EndOfBuffer,
			Offset:   start,
			Track:    -1,
			Detail:   detail,
			Expected: fmt.Sprintf("%d bytes of content", toReturn.Length),
			Found:    fmt.Sprintf("%d bytes", remaining-chunkHeaderSize),
		}
	}
	toReturn.Data = r.buf[start+chunkHeaderSize : int(end)]
	r.next = int(end)
	return &toReturn, nil
}

// Returns the number of bytes after the reader's current offset.
func (r *chunkReader) remaining() int {
	return len(r.buf) - r.next
}
