// Package nso implements a parser for the NSO0 console executable
// container format: a fixed 256-byte little-endian header followed by
// three segments (text, rodata, data), each optionally stored as an LZ4
// block whose decompressed size is declared in the header.
package nso

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/blacktop/go-nso/internal/utils"
)

// File represents a parsed NSO container. The header is read once and is
// immutable; segment extraction uses offset-based reads of the underlying
// source, so a File may be shared across goroutines as long as the
// io.ReaderAt supports concurrent ReadAt calls (os.File does).
type File struct {
	Header Header

	r      io.ReaderAt
	closer io.Closer
}

// Open opens the named file and parses its NSO header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	nso, err := Parse(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	nso.closer = f
	return nso, nil
}

func (f *File) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Parse parses an NSO header from the given reader. Segment data is not
// read until requested.
func Parse(r io.ReaderAt) (*File, error) {
	var magic [4]byte
	if _, err := r.ReadAt(magic[:], 0); err != nil {
		return nil, fmt.Errorf("%w: failed to read magic: %v", ErrTruncatedHeader, err)
	}
	if !bytes.Equal(magic[:], []byte(Magic)) {
		return nil, fmt.Errorf("%w: found %#x, expected %q", ErrInvalidMagic, magic, Magic)
	}

	f := &File{r: r}

	sr := io.NewSectionReader(r, 0, HeaderSize)
	if err := binary.Read(sr, binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("%w: source shorter than %d bytes: %v", ErrTruncatedHeader, HeaderSize, err)
	}

	log.Debugf("parsed NSO header (version %d)", f.Header.Version)
	for _, seg := range []Segment{Text, Rodata, Data} {
		utils.Indent(log.Debug)(fmt.Sprintf("%-6s: offset=%#x file_size=%#x size=%#x compressed=%t",
			seg,
			f.Header.SegmentHeader(seg).FileOffset,
			f.Header.FileSize(seg),
			f.Header.SegmentHeader(seg).Size,
			f.Header.Flags.Compressed(seg)))
	}

	return f, nil
}

func (f *File) String() string {
	h := &f.Header
	var buf bytes.Buffer
	buf.WriteString("NSO Header:\n")
	buf.WriteString(fmt.Sprintf("  Magic:     %s\n", h.Magic))
	buf.WriteString(fmt.Sprintf("  Version:   %d\n", h.Version))
	buf.WriteString(fmt.Sprintf("  Flags:     %#08x\n", uint32(h.Flags)))
	buf.WriteString(fmt.Sprintf("  ModuleID:  %x\n", h.ModuleID))
	buf.WriteString(fmt.Sprintf("  BSS Size:  %s\n", humanize.Bytes(uint64(h.BssSize))))
	buf.WriteString("Segments:\n")
	for _, seg := range []Segment{Text, Rodata, Data} {
		sh := h.SegmentHeader(seg)
		buf.WriteString(fmt.Sprintf("  %-6s %#08x-%#08x mem=%#08x (%s, compressed=%t, hash=%t)\n",
			seg,
			sh.FileOffset,
			sh.FileOffset+h.FileSize(seg),
			sh.MemoryOffset,
			humanize.Bytes(uint64(sh.Size)),
			h.Flags.Compressed(seg),
			h.Flags.HasHash(seg)))
	}
	return buf.String()
}
