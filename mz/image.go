// Package mz parses MS-DOS MZ executable images into an immutable form
// the analysis stages can share.
package mz

import (
	"encoding/binary"
	"fmt"
)

// ParagraphSize is the allocation unit of the real-mode loader; header
// sizes and segment bases are expressed in 16-byte paragraphs.
const ParagraphSize = 16

// headerLen covers the fixed 16-bit fields at offsets 2-25.
const headerLen = 26

// FormatError reports an image that is not a loadable MZ executable.
// Heuristic noise later in the pipeline is never a FormatError; only a
// header that cannot describe a valid program is.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid MZ image: " + e.Reason
}

// Image is the whole executable file plus the header fields derived from
// it. Data is shared, not copied; callers must treat it as read-only.
type Image struct {
	Data []byte

	BytesLastPage    uint16 // e_cblp
	PagesInFile      uint16 // e_cp
	RelocCount       uint16 // e_crlc
	HeaderParagraphs uint16 // e_cparhdr
	MinAlloc         uint16 // e_minalloc
	MaxAlloc         uint16 // e_maxalloc
	InitialSS        uint16 // e_ss
	InitialSP        uint16 // e_sp
	Checksum         uint16 // e_csum
	InitialIP        uint16 // e_ip
	InitialCS        uint16 // e_cs
	RelocTableOffset uint16 // e_lfarlc

	// CodeStart is the file offset of the first code byte,
	// HeaderParagraphs * 16.
	CodeStart int
	// EntryLinear is the program entry as a byte offset into the file,
	// CS*16 + IP.
	EntryLinear int
}

// ParseImage validates the MZ header and derives the code-region start and
// linear entry address. The returned Image aliases data.
func ParseImage(data []byte) (*Image, error) {
	if len(data) < headerLen {
		return nil, &FormatError{Reason: fmt.Sprintf("header truncated at %d bytes", len(data))}
	}
	if data[0] != 'M' || data[1] != 'Z' {
		return nil, &FormatError{Reason: "missing MZ magic"}
	}

	u16 := func(off int) uint16 { return binary.LittleEndian.Uint16(data[off:]) }
	img := &Image{
		Data:             data,
		BytesLastPage:    u16(2),
		PagesInFile:      u16(4),
		RelocCount:       u16(6),
		HeaderParagraphs: u16(8),
		MinAlloc:         u16(10),
		MaxAlloc:         u16(12),
		InitialSS:        u16(14),
		InitialSP:        u16(16),
		Checksum:         u16(18),
		InitialIP:        u16(20),
		InitialCS:        u16(22),
		RelocTableOffset: u16(24),
	}

	img.CodeStart = int(img.HeaderParagraphs) * ParagraphSize
	if img.CodeStart > len(data) {
		return nil, &FormatError{
			Reason: fmt.Sprintf("header declares %d paragraphs, code start 0x%X beyond %d-byte file",
				img.HeaderParagraphs, img.CodeStart, len(data)),
		}
	}

	img.EntryLinear = int(img.InitialCS)*ParagraphSize + int(img.InitialIP)
	if img.EntryLinear >= len(data) {
		return nil, &FormatError{
			Reason: fmt.Sprintf("entry point %04X:%04X resolves to 0x%X outside %d-byte file",
				img.InitialCS, img.InitialIP, img.EntryLinear, len(data)),
		}
	}

	return img, nil
}

// Code returns the code region of the image.
func (img *Image) Code() []byte {
	return img.Data[img.CodeStart:]
}
