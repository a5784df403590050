// Package testutil builds scrambled page fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
)

// ExifBlob builds a little endian TIFF structure with IFD0 pointing at an
// Exif IFD that holds a single ImageUniqueID entry.
func ExifBlob(value string) []byte {
	le := binary.LittleEndian
	str := append([]byte(value), 0)

	var buf bytes.Buffer
	write := func(v any) { _ = binary.Write(&buf, le, v) }

	buf.WriteString("II")
	write(uint16(42))
	write(uint32(8))

	// IFD0 at 8
	write(uint16(1))
	write(uint16(0x8769))
	write(uint16(4))
	write(uint32(1))
	write(uint32(26))
	write(uint32(0))

	// Exif IFD at 26, string data at 44
	write(uint16(1))
	write(uint16(0xA420))
	write(uint16(2))
	write(uint32(len(str)))
	if len(str) <= 4 {
		inline := make([]byte, 4)
		copy(inline, str)
		buf.Write(inline)
	} else {
		write(uint32(44))
	}
	write(uint32(0))
	if len(str) > 4 {
		buf.Write(str)
	}
	return buf.Bytes()
}

func pngChunk(typ string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(typ)
	buf.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	_ = binary.Write(&buf, binary.BigEndian, crc.Sum32())
	return buf.Bytes()
}

// EncodeWithUniqueID encodes img as PNG with an eXIf chunk carrying
// value right after IHDR.
func EncodeWithUniqueID(img image.Image, value string) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	// signature (8) + IHDR chunk (4 + 4 + 13 + 4)
	const ihdrEnd = 33
	out := make([]byte, 0, len(data)+64+len(value))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, pngChunk("eXIf", ExifBlob(value))...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}

// EncodeJPEGWithUniqueID encodes img as JPEG with an APP1 Exif segment
// carrying value right after SOI.
func EncodeJPEGWithUniqueID(img image.Image, value string) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	payload := append([]byte("Exif\x00\x00"), ExifBlob(value)...)
	segment := []byte{0xFF, 0xE1}
	segment = binary.BigEndian.AppendUint16(segment, uint16(2+len(payload)))
	segment = append(segment, payload...)

	const soiEnd = 2
	out := make([]byte, 0, len(data)+len(segment))
	out = append(out, data[:soiEnd]...)
	out = append(out, segment...)
	out = append(out, data[soiEnd:]...)
	return out, nil
}
