// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"sync"
)

// Mouse reporting control sequences: button events (1000) in SGR encoding (1006).
const (
	EnableMouse  = "\x1b[?1000h\x1b[?1006h"
	DisableMouse = "\x1b[?1006l\x1b[?1000l"
)

// maxPendingReport bounds an unterminated mouse report carried between frames.
const maxPendingReport = 32

// Press is a pointer-down at a 1-based terminal cell.
type Press struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit         bool
	Restart      bool
	ToggleMarker bool
	Press        *Press // First pointer-down of the frame, nil if none
	Pressed      []byte // Raw bytes read this frame
	Closed       bool   // The underlying reader is gone
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	closed    bool
	pending   []byte // unterminated mouse report from the previous frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or the stream is closed.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256), done: make(chan struct{})}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close releases the reader goroutine once its current read returns.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream without blocking and parses them.
// A mouse report cut off at the end of the frame is completed by the next call.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := parse(append(s.pending, buf...))
	s.pending = rest
	if s.closed {
		s.pending = nil
	}
	in.Pressed = buf
	in.Closed = s.closed
	return in
}

// Parse interprets one frame of bytes. Only the first mouse press counts;
// releases, drags and wheel events are ignored.
func Parse(buf []byte) Input {
	in, _ := parse(buf)
	in.Pressed = buf
	return in
}

// parse is Parse that also returns a trailing unterminated mouse report
// instead of reading it as keys.
func parse(buf []byte) (Input, []byte) {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && partialSGRMouse(buf[i:]) {
			return in, bytes.Clone(buf[i:])
		}
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' && buf[i+2] == '<' {
			press, n, ok := parseSGRMouse(buf[i+3:])
			if ok {
				if press != nil && in.Press == nil {
					in.Press = press
				}
				i += 2 + n
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
			in.Quit = true
		case 'r', 'R':
			in.Restart = true
		case 'm', 'M':
			in.ToggleMarker = true
		}
	}
	return in, nil
}

// partialSGRMouse reports whether tail is the unterminated start of an
// "ESC [ < b;x;y" report.
func partialSGRMouse(tail []byte) bool {
	if len(tail) > maxPendingReport {
		return false
	}
	const intro = "\x1b[<"
	for i, c := range tail {
		switch {
		case i < len(intro):
			if c != intro[i] {
				return false
			}
		case c != ';' && (c < '0' || c > '9'):
			return false
		}
	}
	return true
}

// parseSGRMouse parses "b;x;y" followed by 'M' (press) or 'm' (release).
// It returns the press (nil for events that are not a left press), the number
// of bytes consumed and whether a complete report was found.
func parseSGRMouse(buf []byte) (*Press, int, bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return nil, 0, false
	}
	fields := bytes.Split(buf[:end], []byte{';'})
	if len(fields) != 3 {
		return nil, 0, false
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, 0, false
		}
		nums[i] = n
	}

	button, col, row := nums[0], nums[1], nums[2]
	isPress := buf[end] == 'M'
	isLeft := button&3 == 0
	isMotion := button&32 != 0
	isWheel := button&64 != 0
	if !isPress || !isLeft || isMotion || isWheel {
		return nil, end + 1, true
	}
	return &Press{Col: col, Row: row}, end + 1, true
}

// WriteMouseMode enables or disables mouse reporting on w.
func WriteMouseMode(w io.Writer, enabled bool) {
	if enabled {
		io.WriteString(w, EnableMouse)
		return
	}
	io.WriteString(w, DisableMouse)
}
