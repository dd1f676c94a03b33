package nso

import (
	"errors"
	"fmt"
)

// Magic is the 4-byte constant at the start of every NSO container.
const Magic = "NSO0"

// HeaderSize is the fixed size of the NSO header. The wire format never
// encodes this length; every field's position is implied by the fields
// before it.
const HeaderSize = 256

var (
	ErrInvalidMagic     = errors.New("invalid NSO magic")
	ErrTruncatedHeader  = errors.New("truncated NSO header")
	ErrOffsetOutOfRange = errors.New("segment file offset beyond end of source")
	ErrTruncatedSegment = errors.New("truncated segment")
	ErrDecompression    = errors.New("failed to decompress segment")
	ErrHashMissing      = errors.New("segment has no hash")
	ErrHashMismatch     = errors.New("segment hash mismatch")
)

// Segment selects one of the three NSO segments.
type Segment int

const (
	Text Segment = iota // executable code
	Rodata
	Data
)

func (s Segment) String() string {
	switch s {
	case Text:
		return "text"
	case Rodata:
		return "rodata"
	case Data:
		return "data"
	}
	return fmt.Sprintf("Segment(%d)", int(s))
}

// A SegmentHeader describes where a segment lives on disk and in memory.
// Size is the uncompressed in-memory size and is the authoritative output
// length when the segment is compressed; the on-disk length lives in the
// header's per-segment file-size fields.
type SegmentHeader struct {
	FileOffset   uint32
	MemoryOffset uint32
	Size         uint32
}

// A SectionHeader is the generic offset/size descriptor used for the
// auxiliary metadata sections.
type SectionHeader struct {
	FileOffset uint32
	Size       uint32
}

// A Header is the fixed 256-byte NSO header. All integers are
// little-endian and fields are decoded in declaration order.
type Header struct {
	Magic            [4]byte
	Version          uint32
	Reserved         uint32
	Flags            Flags
	TextSegment      SegmentHeader
	ModuleNameOffset uint32
	RodataSegment    SegmentHeader
	ModuleNameSize   uint32
	DataSegment      SegmentHeader
	BssSize          uint32
	ModuleID         [32]byte
	TextFileSize     uint32
	RodataFileSize   uint32
	DataFileSize     uint32
	Reserved2        [7]uint32
	EmbeddedSection  SectionHeader
	DynStrSection    SectionHeader
	DynSymSection    SectionHeader
	TextHash         [32]byte
	RodataHash       [32]byte
	DataHash         [32]byte
}

// SegmentHeader returns the segment header record for seg.
func (h *Header) SegmentHeader(seg Segment) SegmentHeader {
	switch seg {
	case Rodata:
		return h.RodataSegment
	case Data:
		return h.DataSegment
	}
	return h.TextSegment
}

// FileSize returns the on-disk (possibly compressed) size of seg.
func (h *Header) FileSize(seg Segment) uint32 {
	switch seg {
	case Rodata:
		return h.RodataFileSize
	case Data:
		return h.DataFileSize
	}
	return h.TextFileSize
}

// Hash returns the embedded content hash for seg. The hash is carried
// verbatim from the header; use File.VerifyHash to check it.
func (h *Header) Hash(seg Segment) [32]byte {
	switch seg {
	case Rodata:
		return h.RodataHash
	case Data:
		return h.DataHash
	}
	return h.TextHash
}
