package libsmf

import (
	"encoding/binary"
)

// Returns a chunk with the given 4-character type and content.
func chunkBytes(id string, data []byte) []byte {
	toReturn := make([]byte, 0, len(data)+8)
	toReturn = append(toReturn, id...)
	toReturn = binary.BigEndian.AppendUint32(toReturn, uint32(len(data)))
	return append(toReturn, data...)
}

// Returns an MThd chunk with the given fields.
func headerBytes(format, trackCount, division uint16) []byte {
	data := make([]byte, 0, 6)
	data = binary.BigEndian.AppendUint16(data, format)
	data = binary.BigEndian.AppendUint16(data, trackCount)
	data = binary.BigEndian.AppendUint16(data, division)
	return chunkBytes("MThd", data)
}

// Returns a complete file with one MTrk chunk per entry in tracks, each of
// which holds a track chunk's content. The header's track count matches the
// number of tracks given.
func fileBytes(format, division uint16, tracks ...[]byte) []byte {
	toReturn := headerBytes(format, uint16(len(tracks)), division)
	for _, t := range tracks {
		toReturn = append(toReturn, chunkBytes("MTrk", t)...)
	}
	return toReturn
}

// Returns the MIDI variable-length encoding of n.
func encodeVariableInt(n uint64) []byte {
	// Break the number up into 7-bit chunks, least significant first.
	toWrite := []byte{byte(n & 0x7f)}
	n = n >> 7
	for n != 0 {
		toWrite = append(toWrite, byte(n&0x7f)|0x80)
		n = n >> 7
	}
	// The most significant group needs to come first.
	for i, j := 0, len(toWrite)-1; i < j; i, j = i+1, j-1 {
		toWrite[i], toWrite[j] = toWrite[j], toWrite[i]
	}
	return toWrite
}
