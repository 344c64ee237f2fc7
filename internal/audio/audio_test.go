package audio

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestPlayKnownCueRingsBell(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer(log.New(io.Discard), &buf)

	p.Play(CueDelivery)

	if buf.String() != "\a" {
		t.Errorf("sink got %q, want bell", buf.String())
	}
}

func TestPlayUnknownCueIsSilentNoError(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer(log.New(io.Discard), &buf)

	p.Play("reggae_solo")
	p.Play("reggae_solo")

	if buf.Len() != 0 {
		t.Errorf("unknown cue wrote %q to sink", buf.String())
	}
}

func TestPlayNilSink(t *testing.T) {
	p := NewPlayer(log.New(io.Discard), nil)
	p.Play(CueFanfare) // must not panic
}
