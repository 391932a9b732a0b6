package prologue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanFramePointerSetups(t *testing.T) {
	code := []byte{
		0x90,             // nop
		0x55, 0x8B, 0xEC, // push bp; mov bp, sp
		0xC3,             // ret
		0x55, 0x89, 0xE5, // alternate encoding
		0xC3,
		0x55, 0x8B, 0xE5, // alternate
		0xC3,
		0xC8, 0x04, 0x00, 0x00, // enter 4, 0
		0xC3,
	}
	data := append(make([]byte, 32), code...)

	found := Scan(data, 32)
	assert.True(t, found[33])
	assert.True(t, found[37])
	assert.True(t, found[41])
	assert.True(t, found[45])
	assert.False(t, found[32])
}

func TestScanOffsetsAreAbsolute(t *testing.T) {
	data := append(make([]byte, 48), 0x55, 0x8B, 0xEC)

	found := Scan(data, 48)
	assert.True(t, found[48])
	assert.False(t, found[0])
}

func TestScanBarePushBPFollowSet(t *testing.T) {
	code := []byte{
		0x55, 0x56, // push bp; push si - accepted
		0x55, 0x90, // push bp; nop - rejected
		0x55, 0x1E, // push bp; push ds - accepted
	}
	data := append(make([]byte, 32), code...)

	found := Scan(data, 32)
	assert.True(t, found[32])
	assert.False(t, found[34])
	assert.True(t, found[36])
}

func TestScanBarePushBPAtEndOfCode(t *testing.T) {
	// No following byte to qualify the match.
	data := append(make([]byte, 32), 0x55)

	found := Scan(data, 32)
	assert.Empty(t, found)
}

func TestScanResumesAfterRejectedMatch(t *testing.T) {
	// The first push bp is rejected (followed by nop), but the one right
	// after the nop is followed by mov and must still be found.
	code := []byte{0x55, 0x90, 0x55, 0x8B, 0xEC}
	data := append(make([]byte, 32), code...)

	found := Scan(data, 32)
	assert.False(t, found[32])
	assert.True(t, found[34])
}

func TestScanIgnoresHeaderBytes(t *testing.T) {
	// Prologue bytes before codeStart are never scanned.
	data := make([]byte, 64)
	copy(data[8:], []byte{0x55, 0x8B, 0xEC})

	found := Scan(data, 32)
	assert.Empty(t, found)
}
