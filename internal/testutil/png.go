// Package testutil holds image fixtures shared by package tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
)

// PNGWithHeader returns a valid 1x1 PNG whose IHDR chunk is rewritten to
// claim width x height. Decoders that only read the header accept it.
func PNGWithHeader(width, height uint32) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	// 8 byte signature, 4 byte length, then "IHDR" and its 13 data bytes.
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	return data, nil
}
