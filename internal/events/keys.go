package events

import "unicode/utf8"

// Key names a decoded key press. Printable keys are the character itself;
// special keys use the same names bubbletea does ("up", "ctrl+c", ...), so
// bubbles key bindings match them directly.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyRight Key = "right"
	KeyLeft  Key = "left"
	KeyEnter Key = "enter"
	KeyTab   Key = "tab"
	KeyEsc   Key = "esc"
	KeyCtrlC Key = "ctrl+c"
	KeyBack  Key = "backspace"
)

func (k Key) String() string {
	return string(k)
}

// Raw-mode byte sequences.
var sequences = []struct {
	seq string
	key Key
}{
	{"\x1b[A", KeyUp},
	{"\x1b[B", KeyDown},
	{"\x1b[C", KeyRight},
	{"\x1b[D", KeyLeft},
	{"\x1bOA", KeyUp},
	{"\x1bOB", KeyDown},
	{"\x1bOC", KeyRight},
	{"\x1bOD", KeyLeft},
}

// DecodeKeys splits a chunk read from a raw-mode terminal into keys.
// Unrecognised escape sequences are dropped.
func DecodeKeys(data []byte) []Key {
	var keys []Key
	for len(data) > 0 {
		k, n := decodeOne(data)
		if k != "" {
			keys = append(keys, k)
		}
		data = data[n:]
	}
	return keys
}

// maxEscapeLen bounds how many bytes of an unfinished escape sequence are
// held back before the sequence is decoded as is.
const maxEscapeLen = 16

// Decoder decodes a stream of reads. An escape sequence cut off at the end of
// one read is kept until the next, so an arrow key split across reads still
// decodes as one key.
type Decoder struct {
	pending []byte
}

// Feed decodes data, prefixed by whatever the previous call held back.
func (d *Decoder) Feed(data []byte) []Key {
	buf := append(d.pending, data...)
	d.pending = nil

	var keys []Key
	for len(buf) > 0 {
		if incompleteEscape(buf) {
			d.pending = append([]byte(nil), buf...)
			break
		}
		k, n := decodeOne(buf)
		if k != "" {
			keys = append(keys, k)
		}
		buf = buf[n:]
	}
	return keys
}

// Flush decodes anything held back, such as a lone escape at end of input.
func (d *Decoder) Flush() []Key {
	keys := DecodeKeys(d.pending)
	d.pending = nil
	return keys
}

func incompleteEscape(buf []byte) bool {
	if buf[0] != 0x1b || len(buf) >= maxEscapeLen {
		return false
	}
	if len(buf) == 1 {
		return true
	}
	switch buf[1] {
	case 'O':
		return len(buf) < 3
	case '[':
		for _, b := range buf[2:] {
			if b >= 0x40 && b <= 0x7e {
				return false
			}
		}
		return true
	}
	return false
}

func decodeOne(data []byte) (Key, int) {
	switch data[0] {
	case 0x1b:
		for _, s := range sequences {
			if len(data) >= len(s.seq) && string(data[:len(s.seq)]) == s.seq {
				return s.key, len(s.seq)
			}
		}
		if len(data) > 1 && (data[1] == '[' || data[1] == 'O') {
			return "", csiLength(data)
		}
		return KeyEsc, 1
	case 0x03:
		return KeyCtrlC, 1
	case '\r', '\n':
		return KeyEnter, 1
	case '\t':
		return KeyTab, 1
	case 0x7f, 0x08:
		return KeyBack, 1
	}

	if data[0] < 0x20 {
		return "", 1
	}
	r, n := utf8.DecodeRune(data)
	if r == utf8.RuneError {
		return "", n
	}
	return Key(string(r)), n
}

// csiLength returns the length of an escape sequence starting at data[0],
// ending at the first final byte in 0x40-0x7e after the introducer.
func csiLength(data []byte) int {
	for i := 2; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return i + 1
		}
	}
	return len(data)
}
