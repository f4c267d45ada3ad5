// Package melody builds the page's short C major theme and writes it as a
// single-track Standard MIDI File.
package melody

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/text/unicode/norm"
)

// TicksPerBeat is the file resolution.
const TicksPerBeat = 960

// DefaultName is the track name written into the file.
const DefaultName = "Everything's Gonna Be Alright"

// DefaultTempo in beats per minute.
const DefaultTempo = 100

// Note is one pitched event. Start and Duration are in beats.
type Note struct {
	Pitch    uint8
	Start    float64
	Duration float64
	Velocity uint8
}

// End returns the beat at which the note stops sounding.
func (n Note) End() float64 { return n.Start + n.Duration }

// Score is a named, single-channel arrangement of melody and bass.
type Score struct {
	Name    string
	Tempo   float64
	Channel uint8
	Melody  []Note
	Bass    []Note
}

// Default returns the theme: four melody phrases over a root-note bass line.
func Default() Score {
	return Score{
		Name:  DefaultName,
		Tempo: DefaultTempo,
		Melody: []Note{
			// "Everything's gonna be..."
			{60, 0.0, 0.5, 90},
			{64, 0.5, 0.5, 90},
			{67, 1.0, 0.5, 95},
			{69, 1.5, 0.5, 95},
			{67, 2.0, 1.0, 100},
			// "...alright"
			{64, 3.0, 0.5, 90},
			{67, 3.5, 0.5, 90},
			{72, 4.0, 1.5, 100},
			// response
			{69, 6.0, 0.5, 85},
			{67, 6.5, 0.5, 85},
			{64, 7.0, 0.5, 90},
			{60, 7.5, 0.5, 90},
			{64, 8.0, 2.0, 95},
			// ending
			{67, 10.0, 0.5, 85},
			{69, 10.5, 0.5, 85},
			{72, 11.0, 2.0, 90},
		},
		Bass: []Note{
			{48, 0.0, 2.0, 70},
			{48, 2.0, 2.0, 70},
			{55, 4.0, 2.0, 70},
			{52, 6.0, 2.0, 70},
			{48, 8.0, 2.0, 70},
			{55, 10.0, 2.0, 70},
			{48, 12.0, 1.0, 70},
		},
	}
}

// Notes returns melody then bass.
func (s Score) Notes() []Note {
	return append(slices.Clone(s.Melody), s.Bass...)
}

// Length returns the score length in beats: the end of its last note.
func (s Score) Length() float64 {
	var end float64
	for _, n := range s.Notes() {
		end = math.Max(end, n.End())
	}
	return end
}

// Duration returns the playing time at the score's tempo.
func (s Score) Duration() time.Duration {
	if s.Tempo <= 0 {
		return 0
	}
	return time.Duration(math.Round(s.Length() * 60 * float64(time.Second) / s.Tempo))
}

// Validate checks the score can be written.
func (s Score) Validate() error {
	if s.Tempo <= 0 {
		return fmt.Errorf("tempo must be positive, got %v", s.Tempo)
	}
	if s.Channel > 15 {
		return fmt.Errorf("channel must be 0-15, got %d", s.Channel)
	}
	for _, n := range s.Notes() {
		if n.Pitch > 127 || n.Velocity > 127 {
			return fmt.Errorf("note %d at beat %v: pitch and velocity must be 0-127", n.Pitch, n.Start)
		}
		if n.Start < 0 || n.Duration <= 0 {
			return fmt.Errorf("note %d at beat %v: invalid timing", n.Pitch, n.Start)
		}
	}
	if len(s.Notes()) == 0 {
		return errors.New("score has no notes")
	}
	return nil
}

type event struct {
	tick uint32
	off  bool
	msg  midi.Message
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Round(beats * TicksPerBeat))
}

// SMF renders the score into a single-track file. Events are ordered by
// tick and note-offs sort before note-ons on the same tick, so a repeated
// pitch is released before it is struck again.
func (s Score) SMF() (*smf.SMF, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var events []event
	for _, n := range s.Notes() {
		events = append(events,
			event{tick: beatsToTicks(n.Start), msg: midi.NoteOn(s.Channel, n.Pitch, n.Velocity)},
			event{tick: beatsToTicks(n.End()), off: true, msg: midi.NoteOff(s.Channel, n.Pitch)},
		)
	}
	slices.SortStableFunc(events, func(a, b event) int {
		if a.tick != b.tick {
			return int(a.tick) - int(b.tick)
		}
		switch {
		case a.off && !b.off:
			return -1
		case !a.off && b.off:
			return 1
		}
		return 0
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(norm.NFC.String(s.Name)))
	tr.Add(0, smf.MetaTempo(s.Tempo))
	var last uint32
	for _, e := range events {
		tr.Add(e.tick-last, e.msg)
		last = e.tick
	}
	tr.Close(0)

	file := smf.New()
	file.TimeFormat = smf.MetricTicks(TicksPerBeat)
	if err := file.Add(tr); err != nil {
		return nil, fmt.Errorf("adding track: %w", err)
	}
	return file, nil
}

// WriteTo writes the score as a Standard MIDI File.
func (s Score) WriteTo(w io.Writer) (int64, error) {
	file, err := s.SMF()
	if err != nil {
		return 0, err
	}
	return file.WriteTo(w)
}

// WriteFile writes the score to path, creating parent directories.
func (s Score) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := s.WriteTo(bw); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
