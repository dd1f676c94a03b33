package nso

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// RawSegment returns the on-disk bytes of seg: exactly FileSize(seg) bytes
// starting at the segment's file offset, still compressed if the segment's
// compression flag is set. The returned buffer is owned by the caller.
func (f *File) RawSegment(seg Segment) ([]byte, error) {
	sh := f.Header.SegmentHeader(seg)
	fileSize := f.Header.FileSize(seg)

	data := make([]byte, fileSize)
	sr := io.NewSectionReader(f.r, int64(sh.FileOffset), int64(fileSize))
	if _, err := io.ReadFull(sr, data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s segment at offset %#x", ErrOffsetOutOfRange, seg, sh.FileOffset)
		}
		return nil, fmt.Errorf("%w: %s segment wants %d bytes at offset %#x: %v",
			ErrTruncatedSegment, seg, fileSize, sh.FileOffset, err)
	}

	return data, nil
}

// Segment returns the final bytes of seg: the raw bytes if the segment is
// stored uncompressed, otherwise the LZ4 block decompressed to exactly the
// size declared in the segment header.
func (f *File) Segment(seg Segment) ([]byte, error) {
	data, err := f.RawSegment(seg)
	if err != nil {
		return nil, err
	}

	if !f.Header.Flags.Compressed(seg) {
		return data, nil
	}

	// the declared in-memory size is authoritative; LZ4 blocks do not
	// carry their own output length
	decomp := make([]byte, f.Header.SegmentHeader(seg).Size)
	n, err := lz4.UncompressBlock(data, decomp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s segment: %v", ErrDecompression, seg, err)
	}
	if n != len(decomp) {
		return nil, fmt.Errorf("%w: %s segment: got %d bytes, header declares %d",
			ErrDecompression, seg, n, len(decomp))
	}

	return decomp, nil
}

// ModuleName reads the embedded module name, if any.
func (f *File) ModuleName() (string, error) {
	if f.Header.ModuleNameSize == 0 {
		return "", nil
	}
	name := make([]byte, f.Header.ModuleNameSize)
	if _, err := f.r.ReadAt(name, int64(f.Header.ModuleNameOffset)); err != nil {
		return "", fmt.Errorf("failed to read module name: %w", err)
	}
	return strings.TrimRight(string(name), "\x00"), nil
}

// VerifyHash checks the embedded SHA-256 of seg against its final bytes.
// Returns ErrHashMissing when the segment's hash-present flag is unset.
// The core extraction path never calls this; it is opt-in.
func (f *File) VerifyHash(seg Segment) error {
	if !f.Header.Flags.HasHash(seg) {
		return fmt.Errorf("%w: %s", ErrHashMissing, seg)
	}
	data, err := f.Segment(seg)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(data)
	if want := f.Header.Hash(seg); !bytes.Equal(sum[:], want[:]) {
		return fmt.Errorf("%w: %s segment: got %x, header has %x", ErrHashMismatch, seg, sum, want)
	}
	return nil
}
