package nso

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Write re-encodes the header to its on-disk 256-byte form.
func (h *Header) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// Bytes returns the header's on-disk 256-byte form.
func (h *Header) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := h.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
