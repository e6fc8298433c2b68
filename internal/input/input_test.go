package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Input
	}{
		{name: "quit", in: "q", want: Input{Quit: true}},
		{name: "ctrl-c", in: "\x03", want: Input{Quit: true}},
		{name: "restart", in: "R", want: Input{Restart: true}},
		{name: "marker", in: "m", want: Input{ToggleMarker: true}},
		{name: "unrelated", in: "xyz", want: Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			if got.Quit != tt.want.Quit || got.Restart != tt.want.Restart ||
				got.ToggleMarker != tt.want.ToggleMarker || got.Press != nil {
				t.Fatalf("Parse(%q) = %+v", tt.in, got)
			}
		})
	}
}

func TestParseMouse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantPress *Press
		wantKeys  bool
	}{
		{name: "left press", in: "\x1b[<0;12;7M", wantPress: &Press{Col: 12, Row: 7}},
		{name: "release ignored", in: "\x1b[<0;12;7m"},
		{name: "right button ignored", in: "\x1b[<2;12;7M"},
		{name: "drag ignored", in: "\x1b[<32;12;7M"},
		{name: "wheel ignored", in: "\x1b[<64;12;7M"},
		{name: "first press wins", in: "\x1b[<0;1;2M\x1b[<0;1;2m\x1b[<0;30;40M", wantPress: &Press{Col: 1, Row: 2}},
		{name: "press then key", in: "\x1b[<0;5;6Mr", wantPress: &Press{Col: 5, Row: 6}, wantKeys: true},
		{name: "m inside report is not a key", in: "\x1b[<0;5;6m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.in))
			switch {
			case tt.wantPress == nil && got.Press != nil:
				t.Fatalf("unexpected press %+v", got.Press)
			case tt.wantPress != nil && (got.Press == nil || *got.Press != *tt.wantPress):
				t.Fatalf("press = %+v, want %+v", got.Press, tt.wantPress)
			}
			if got.Restart != tt.wantKeys {
				t.Fatalf("restart = %v, want %v", got.Restart, tt.wantKeys)
			}
			if got.ToggleMarker {
				t.Fatalf("mouse report leaked a marker toggle")
			}
		})
	}
}

func TestReadInputReportsClosedReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("r\x1b[<0;3;4M")))

	var seen []byte
	var in Input
	deadline := time.Now().Add(2 * time.Second)
	for !in.Closed {
		if time.Now().After(deadline) {
			t.Fatalf("stream never closed, read %q", seen)
		}
		in = ReadInput(s)
		seen = append(seen, in.Pressed...)
		time.Sleep(time.Millisecond)
	}

	got := Parse(seen)
	if !got.Restart || got.Press == nil || *got.Press != (Press{Col: 3, Row: 4}) {
		t.Fatalf("parsed %q into %+v", seen, got)
	}
	if in := ReadInput(s); !in.Closed || len(in.Pressed) != 0 {
		t.Fatalf("closed stream returned %+v", in)
	}
}

func TestParseHoldsBackUnterminatedReport(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		second    string
		wantPress *Press
	}{
		{name: "press split before terminator", first: "\x1b[<0;10;5", second: "M", wantPress: &Press{Col: 10, Row: 5}},
		{name: "release split before terminator", first: "\x1b[<0;10;5", second: "m"},
		{name: "split after escape", first: "r\x1b", second: "[<0;7;8M", wantPress: &Press{Col: 7, Row: 8}},
		{name: "split inside coordinates", first: "\x1b[<0;1", second: "2;3M", wantPress: &Press{Col: 12, Row: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rest := parse([]byte(tt.first))
			if in.Press != nil || in.ToggleMarker || len(rest) == 0 {
				t.Fatalf("first half: in=%+v rest=%q", in, rest)
			}
			in, rest = parse(append(rest, tt.second...))
			if in.ToggleMarker {
				t.Fatalf("terminator read as a marker toggle")
			}
			if len(rest) != 0 {
				t.Fatalf("leftover %q", rest)
			}
			switch {
			case tt.wantPress == nil && in.Press != nil:
				t.Fatalf("unexpected press %+v", in.Press)
			case tt.wantPress != nil && (in.Press == nil || *in.Press != *tt.wantPress):
				t.Fatalf("press = %+v, want %+v", in.Press, tt.wantPress)
			}
		})
	}
}

func TestReadInputJoinsReportAcrossFrames(t *testing.T) {
	pr, pw := io.Pipe()
	s := StartStream(bufio.NewReader(pr))
	defer s.Close()
	defer pw.Close()

	waitFor := func(n int) Input {
		t.Helper()
		var got Input
		seen := 0
		deadline := time.Now().Add(2 * time.Second)
		for seen < n {
			if time.Now().After(deadline) {
				t.Fatalf("read %d of %d bytes", seen, n)
			}
			in := ReadInput(s)
			seen += len(in.Pressed)
			got.ToggleMarker = got.ToggleMarker || in.ToggleMarker
			if in.Press != nil {
				got.Press = in.Press
			}
			time.Sleep(time.Millisecond)
		}
		return got
	}

	go pw.Write([]byte("\x1b[<0;10;5"))
	if in := waitFor(len("\x1b[<0;10;5")); in.Press != nil || in.ToggleMarker {
		t.Fatalf("partial report parsed as %+v", in)
	}

	go pw.Write([]byte("M"))
	in := waitFor(1)
	if in.ToggleMarker {
		t.Fatalf("terminator read as a marker toggle")
	}
	if in.Press == nil || *in.Press != (Press{Col: 10, Row: 5}) {
		t.Fatalf("press = %+v, want {10 5}", in.Press)
	}
}

func TestCloseReleasesBlockedReader(t *testing.T) {
	// More bytes than the channel holds, with nobody draining it.
	src := strings.Repeat("x", 1024)
	r := bufio.NewReader(strings.NewReader(src))
	s := StartStream(r)
	s.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if in := ReadInput(s); in.Closed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reader goroutine did not exit after Close")
		}
		time.Sleep(time.Millisecond)
	}
}
