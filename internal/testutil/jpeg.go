// Package testutil builds small image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
)

// DateTimeTag is the IFD0 tag holding the image modification timestamp.
const DateTimeTag uint16 = 0x0132

// TIFFWithASCIITag returns a little-endian TIFF block with one ASCII tag in IFD0.
func TIFFWithASCIITag(tagID uint16, value string) []byte {
	ascii := append([]byte(value), 0x00)
	dataOffset := uint32(26) // header(8) + count(2) + entry(12) + nextIFD(4)

	var buf bytes.Buffer
	buf.Write([]byte{0x49, 0x49, 0x2A, 0x00})
	binary.Write(&buf, binary.LittleEndian, uint32(8))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, tagID)
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(len(ascii)))
	binary.Write(&buf, binary.LittleEndian, dataOffset)
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	buf.Write(ascii)
	return buf.Bytes()
}

// JPEGWithDateTime returns a minimal JPEG whose APP1 segment carries an
// EXIF DateTime tag set to value.
func JPEGWithDateTime(value string) []byte {
	return JPEGWithTag(DateTimeTag, value)
}

func JPEGWithTag(tagID uint16, value string) []byte {
	payload := append([]byte("Exif\x00\x00"), TIFFWithASCIITag(tagID, value)...)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// PlainJPEG returns a JPEG without any APP1 segment.
func PlainJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
