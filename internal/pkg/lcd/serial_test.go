package lcd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSerial() (*Serial, *bytes.Buffer) {
	var buf bytes.Buffer
	s := NewSerial(&buf, WithSettleDelay(0))
	buf.Reset() // drop the init sequence
	return s, &buf
}

func TestSerialInitSendsScreenSize(t *testing.T) {
	var buf bytes.Buffer
	NewSerial(&buf, WithSettleDelay(0))
	assert.Equal(t, []byte{0x7C, 0x05}, buf.Bytes())
}

func TestSerialClear(t *testing.T) {
	s, buf := testSerial()
	s.Clear()
	assert.Equal(t, []byte{0xFE, 0x01}, buf.Bytes())
}

func TestSerialSetPosition(t *testing.T) {
	for _, tc := range []struct {
		name      string
		line, col int
		expected  []byte
	}{
		{name: "line one origin", line: 0, col: 0, expected: []byte{0xFE, 128}},
		{name: "line one last column", line: 0, col: 15, expected: []byte{0xFE, 143}},
		{name: "line two origin", line: 1, col: 0, expected: []byte{0xFE, 192}},
		{name: "line two middle", line: 1, col: 7, expected: []byte{0xFE, 199}},
		{name: "column clamped high", line: 0, col: 20, expected: []byte{0xFE, 143}},
		{name: "column clamped low", line: 0, col: -3, expected: []byte{0xFE, 128}},
		{name: "line clamped", line: 5, col: 0, expected: []byte{0xFE, 192}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, buf := testSerial()
			s.SetPosition(tc.line, tc.col)
			assert.Equal(t, tc.expected, buf.Bytes())
		})
	}
}

func TestSerialGoTo(t *testing.T) {
	for _, tc := range []struct {
		name     string
		pos      int
		expected []byte
	}{
		{name: "origin", pos: 0, expected: []byte{0xFE, 128}},
		{name: "end of line one", pos: 15, expected: []byte{0xFE, 143}},
		{name: "start of line two", pos: 16, expected: []byte{0xFE, 192}},
		{name: "end of line two", pos: 31, expected: []byte{0xFE, 207}},
		{name: "past the end folds to origin", pos: 32, expected: []byte{0xFE, 128}},
		{name: "far past the end folds to origin", pos: 100, expected: []byte{0xFE, 128}},
		{name: "negative folds to origin", pos: -1, expected: []byte{0xFE, 128}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, buf := testSerial()
			s.GoTo(tc.pos)
			assert.Equal(t, tc.expected, buf.Bytes())
		})
	}
}

func TestSerialBacklight(t *testing.T) {
	s, buf := testSerial()
	s.BacklightOn()
	assert.Equal(t, []byte{0x7C, 157}, buf.Bytes())

	buf.Reset()
	s.BacklightOff()
	assert.Equal(t, []byte{0x7C, 128}, buf.Bytes())
}

func TestSerialScreenSizeClamped(t *testing.T) {
	for _, tc := range []struct {
		size     int
		expected byte
	}{
		{size: 3, expected: 3},
		{size: 6, expected: 6},
		{size: 2, expected: 3},
		{size: 9, expected: 6},
	} {
		s, buf := testSerial()
		s.ScreenSize(tc.size)
		assert.Equal(t, []byte{0x7C, tc.expected}, buf.Bytes())
	}
}

func TestSerialPrintRaw(t *testing.T) {
	s, buf := testSerial()
	s.Print("Interval")
	assert.Equal(t, []byte("Interval"), buf.Bytes())
}

func TestSerialPrintBlanksReservedBytes(t *testing.T) {
	s, buf := testSerial()
	s.Print("a" + string(rune(0x7C)) + "b")
	assert.Equal(t, []byte("a b"), buf.Bytes())
}

func TestSerialPrintTruncatesToRowWidth(t *testing.T) {
	s, buf := testSerial()
	s.Print("0123456789abcdefOVERFLOW")
	assert.Equal(t, []byte("0123456789abcdef"), buf.Bytes())
}
