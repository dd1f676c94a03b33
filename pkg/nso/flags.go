package nso

// Flags is the packed per-segment bitfield at offset 12 of the header,
// stored as a little-endian uint32. Bit 0 is the least-significant bit of
// the value as stored on disk.
//
//	bit 0: text compressed
//	bit 1: rodata compressed
//	bit 2: data compressed
//	bit 3: text hash present
//	bit 4: rodata hash present
//	bit 5: data hash present
//	bits 6-31: reserved
type Flags uint32

const (
	flagTextCompressed Flags = 1 << iota
	flagRodataCompressed
	flagDataCompressed
	flagTextHash
	flagRodataHash
	flagDataHash
)

func (f Flags) TextCompressed() bool   { return f&flagTextCompressed != 0 }
func (f Flags) RodataCompressed() bool { return f&flagRodataCompressed != 0 }
func (f Flags) DataCompressed() bool   { return f&flagDataCompressed != 0 }
func (f Flags) TextHash() bool         { return f&flagTextHash != 0 }
func (f Flags) RodataHash() bool       { return f&flagRodataHash != 0 }
func (f Flags) DataHash() bool         { return f&flagDataHash != 0 }

// Reserved returns bits 6-31, retained but unused.
func (f Flags) Reserved() uint32 { return uint32(f) >> 6 }

// Compressed reports whether seg's compression flag is set.
func (f Flags) Compressed(seg Segment) bool {
	switch seg {
	case Rodata:
		return f.RodataCompressed()
	case Data:
		return f.DataCompressed()
	}
	return f.TextCompressed()
}

// HasHash reports whether seg's hash-present flag is set.
func (f Flags) HasHash(seg Segment) bool {
	switch seg {
	case Rodata:
		return f.RodataHash()
	case Data:
		return f.DataHash()
	}
	return f.TextHash()
}

// FlagSet is Flags unpacked into a plain record.
type FlagSet struct {
	TextCompressed   bool
	RodataCompressed bool
	DataCompressed   bool
	TextHash         bool
	RodataHash       bool
	DataHash         bool
	Reserved         uint32
}

// Decode unpacks the bitfield into a FlagSet.
func (f Flags) Decode() FlagSet {
	return FlagSet{
		TextCompressed:   f.TextCompressed(),
		RodataCompressed: f.RodataCompressed(),
		DataCompressed:   f.DataCompressed(),
		TextHash:         f.TextHash(),
		RodataHash:       f.RodataHash(),
		DataHash:         f.DataHash(),
		Reserved:         f.Reserved(),
	}
}

// Encode packs a FlagSet back into the on-disk bitfield.
func (fs FlagSet) Encode() Flags {
	var f Flags
	if fs.TextCompressed {
		f |= flagTextCompressed
	}
	if fs.RodataCompressed {
		f |= flagRodataCompressed
	}
	if fs.DataCompressed {
		f |= flagDataCompressed
	}
	if fs.TextHash {
		f |= flagTextHash
	}
	if fs.RodataHash {
		f |= flagRodataHash
	}
	if fs.DataHash {
		f |= flagDataHash
	}
	return f | Flags(fs.Reserved<<6)
}
