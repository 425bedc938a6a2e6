package tuitest

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[HPage 1 of 3   \r\n\x1b[1mverse\x1b[0m\n\n\x1b[2J\x1b[HPage 2 of 3\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("expected two frames, got %d: %+v", len(frames), frames)
	}
	if frames[0].Plain != "Page 1 of 3\nverse" {
		t.Fatalf("unexpected first frame %q", frames[0].Plain)
	}
	rec := &Recording{Raw: raw, Frames: frames}
	last, ok := rec.FinalFrame()
	if !ok || last.Plain != "Page 2 of 3" {
		t.Fatalf("unexpected final frame %q", last.Plain)
	}
	found, ok := rec.LastFrameContaining("Page 1", "verse")
	if !ok || found.Index != 0 {
		t.Fatalf("expected to find the first frame, got %+v ok=%v", found, ok)
	}
	if _, ok := rec.LastFrameContaining("Page 4"); ok {
		t.Fatal("no frame shows page 4")
	}
	if plain := rec.Plain(); !strings.Contains(plain, "Page 1 of 3") || strings.Contains(plain, "\x1b") {
		t.Fatalf("plain transcript should be escape-free, got %q", plain)
	}
}

func TestStripANSIRemovesOSC(t *testing.T) {
	got := stripANSI("\x1b]11;?\x07\x1b[38;5;81mJump to\x1b[0m")
	if got != "Jump to" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTerminalResponderAnswersQueries(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("hello\x1b[6"))
	if out.Len() != 0 {
		t.Fatal("partial query should not be answered yet")
	}
	tr.Process([]byte("n\x1b]11;?\x07"))
	want := "\x1b[1;1R\x1b]11;rgb:0000/0000/0000\x07"
	if out.String() != want {
		t.Fatalf("unexpected replies %q", out.String())
	}
}

func TestTranscriptContains(t *testing.T) {
	var tr transcript
	tr.Write([]byte("\x1b[1mPage\x1b[0m 3 of 3"))
	if !tr.Contains("Page 3 of 3") {
		t.Fatal("styled output should match plain text")
	}
	if tr.Contains("Page 4") {
		t.Fatal("unexpected match")
	}
}
