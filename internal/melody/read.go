package melody

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Summary is what a MIDI file contains, as read back from disk.
type Summary struct {
	Name   string
	Tempo  float64
	Tracks int
	Notes  []Note // ordered by start, then pitch
}

// Length returns the end of the last note in beats.
func (s Summary) Length() float64 {
	return Score{Melody: s.Notes}.Length()
}

// ReadFile parses the MIDI file at path.
func ReadFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a Standard MIDI File and pairs each note-on with the next
// note-off for the same channel and key.
func Read(r io.Reader) (*Summary, error) {
	file, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading midi: %w", err)
	}
	mt, ok := file.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", file.TimeFormat)
	}
	tpb := float64(mt.Ticks4th())

	type key struct{ ch, key uint8 }
	type open struct {
		tick uint64
		vel  uint8
	}

	sum := &Summary{Tracks: len(file.Tracks)}
	for _, tr := range file.Tracks {
		pending := map[key][]open{}
		var tick uint64
		for _, ev := range tr {
			tick += uint64(ev.Delta)

			var text string
			var bpm float64
			if ev.Message.GetMetaTrackName(&text) && sum.Name == "" {
				sum.Name = text
				continue
			}
			if ev.Message.GetMetaTempo(&bpm) && sum.Tempo == 0 {
				sum.Tempo = bpm
				continue
			}

			msg := midi.Message(ev.Message)
			var ch, k, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &k, &vel):
				pending[key{ch, k}] = append(pending[key{ch, k}], open{tick, vel})
			case msg.GetNoteEnd(&ch, &k):
				q := pending[key{ch, k}]
				if len(q) == 0 {
					continue
				}
				on := q[0]
				pending[key{ch, k}] = q[1:]
				sum.Notes = append(sum.Notes, Note{
					Pitch:    k,
					Start:    float64(on.tick) / tpb,
					Duration: float64(tick-on.tick) / tpb,
					Velocity: on.vel,
				})
			}
		}
	}

	slices.SortFunc(sum.Notes, func(a, b Note) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Pitch, b.Pitch)
	})
	return sum, nil
}
