package main

import (
	"bufio"

	"github.com/justy989/ce/modal"
)

// decodeKey reads one keystroke off r, recognizing C0 control codes,
// `Ctrl+A..Ctrl+Z` (the control codes 0x01-0x1A), and the CSI escape
// sequences a terminal sends for arrow/page/function keys. Bytes that
// don't start a recognized escape are returned as plain printable
// runes, mirroring the decode side of the CSI dispatch termio/ansi.go
// already does for PTY output.
func decodeKey(r *bufio.Reader) (modal.KeyPress, error) {
	b, err := r.ReadByte()
	if err != nil {
		return modal.KeyPress{}, err
	}

	switch {
	case b == 0x1B:
		return decodeEscape(r)
	case b == 0x7F:
		return modal.KeyPress{Key: modal.KeyBackspace}, nil
	case b == 0x0D:
		return modal.KeyPress{Key: modal.KeyEnter}, nil
	case b == 0x09:
		return modal.KeyPress{Key: modal.KeyTab}, nil
	case b >= 0x01 && b <= 0x1A:
		return modal.KeyPress{Key: rune('a' + b - 1), Ctrl: true}, nil
	default:
		return modal.KeyPress{Key: rune(b)}, nil
	}
}

// decodeEscape handles the CSI sequences a plain ESC byte can begin.
// A lone ESC with nothing following (or something unrecognized) is
// reported as KeyEscape. The returned error is always nil.
func decodeEscape(r *bufio.Reader) (modal.KeyPress, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return modal.KeyPress{Key: modal.KeyEscape}, nil
	}
	if b1 != '[' && b1 != 'O' {
		_ = r.UnreadByte()
		return modal.KeyPress{Key: modal.KeyEscape}, nil
	}

	b2, err := r.ReadByte()
	if err != nil {
		return modal.KeyPress{Key: modal.KeyEscape}, nil
	}

	switch b2 {
	case 'A':
		return modal.KeyPress{Key: modal.KeyUp}, nil
	case 'B':
		return modal.KeyPress{Key: modal.KeyDown}, nil
	case 'C':
		return modal.KeyPress{Key: modal.KeyRight}, nil
	case 'D':
		return modal.KeyPress{Key: modal.KeyLeft}, nil
	case 'H':
		return modal.KeyPress{Key: modal.KeyHome}, nil
	case 'F':
		return modal.KeyPress{Key: modal.KeyEnd}, nil
	case '5', '6':
		b3, err := r.ReadByte()
		if err != nil {
			return modal.KeyPress{Key: modal.KeyEscape}, nil
		}
		if b3 != '~' {
			return modal.KeyPress{Key: modal.KeyEscape}, nil
		}
		if b2 == '5' {
			return modal.KeyPress{Key: modal.KeyPageUp}, nil
		}
		return modal.KeyPress{Key: modal.KeyPageDown}, nil
	case 'P':
		return modal.KeyPress{Key: modal.KeyF1}, nil
	case 'Q':
		return modal.KeyPress{Key: modal.KeyF2}, nil
	case 'R':
		return modal.KeyPress{Key: modal.KeyF3}, nil
	case 'S':
		return modal.KeyPress{Key: modal.KeyF4}, nil
	case '1':
		b3, err := r.ReadByte()
		if err != nil {
			return modal.KeyPress{Key: modal.KeyEscape}, nil
		}
		if b3 == '~' {
			return modal.KeyPress{Key: modal.KeyF1}, nil
		}
		b4, err := r.ReadByte()
		if err != nil || b4 != '~' {
			return modal.KeyPress{Key: modal.KeyEscape}, nil
		}
		switch b3 {
		case '5':
			return modal.KeyPress{Key: modal.KeyF5}, nil
		case '7':
			return modal.KeyPress{Key: modal.KeyF6}, nil
		case '8':
			return modal.KeyPress{Key: modal.KeyF7}, nil
		case '9':
			return modal.KeyPress{Key: modal.KeyF8}, nil
		default:
			return modal.KeyPress{Key: modal.KeyEscape}, nil
		}
	default:
		return modal.KeyPress{Key: modal.KeyEscape}, nil
	}
}
