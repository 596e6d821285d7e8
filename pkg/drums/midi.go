package drums

import (
	"bytes"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// TicksPerQuarter is the fixed SMF resolution.
	TicksPerQuarter = 480

	// DrumChannel is the standard percussion channel (channel 10,
	// zero-indexed).
	DrumChannel = 9

	// maxTick is the largest delta-encodable absolute tick (4-byte
	// variable-length quantity).
	maxTick = 0x0FFFFFFF
)

// Encoder serializes Patterns into standard MIDI files.
type Encoder struct {
	ticksPerQuarter uint16
}

// NewEncoder creates an Encoder at the fixed 480 TPQN resolution.
func NewEncoder() *Encoder {
	return &Encoder{ticksPerQuarter: TicksPerQuarter}
}

// tickEvent is a note-on or note-off pinned to an absolute tick.
type tickEvent struct {
	tick     int64
	on       bool
	key      uint8
	velocity uint8
	priority int
}

// Encode renders a Pattern as a format-1 SMF byte buffer: a meta track
// carrying name/tempo/time-signature, and a note track on the drum
// channel. Events are ordered by absolute tick with a fixed voice
// priority at ties, so identical Patterns encode to identical bytes.
func (e *Encoder) Encode(p *Pattern) ([]byte, error) {
	if p == nil {
		return nil, encodingErrorf("nil pattern")
	}
	if p.Tempo <= 0 {
		return nil, encodingErrorf("tempo %g is not positive", p.Tempo)
	}

	ticksPerBeat := float64(e.ticksPerQuarter)
	ticksPerBar := ticksPerBeat * BeatsPerBar

	var events []tickEvent
	for _, bar := range p.Bars {
		for _, ev := range bar.Events {
			key, ok := GMNotes[ev.Instrument]
			if !ok {
				return nil, encodingErrorf("no GM key for instrument %q", ev.Instrument)
			}
			start := int64(math.Round(float64(bar.Index)*ticksPerBar + ev.Offset*ticksPerBeat*BeatsPerBar))
			durTicks := int64(math.Round(ev.Duration * ticksPerBeat))
			if durTicks < 1 {
				durTicks = 1
			}
			end := start + durTicks
			if start < 0 {
				return nil, encodingErrorf("negative tick %d for %s in bar %d", start, ev.Instrument, bar.Index)
			}
			if end > maxTick {
				return nil, encodingErrorf("tick %d exceeds representable range", end)
			}
			prio := voicePriority(ev.Instrument)
			events = append(events, tickEvent{tick: start, on: true, key: key, velocity: ev.Velocity, priority: prio})
			events = append(events, tickEvent{tick: end, on: false, key: key, priority: prio})
		}
	}

	// Note-offs sort ahead of note-ons at the same tick so adjacent
	// hits on one key never overlap.
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		if a.on != b.on {
			return !a.on
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.key < b.key
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(e.ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, trackNameMessage(trackName(p)))
	meta.Add(0, tempoMessage(p.Tempo))
	// 4/4 time signature
	meta.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return nil, encodingErrorf("add meta track: %v", err)
	}

	var notes smf.Track
	var cursor int64
	for _, ev := range events {
		delta := uint32(ev.tick - cursor)
		if ev.on {
			notes.Add(delta, midi.NoteOn(DrumChannel, ev.key, ev.velocity))
		} else {
			notes.Add(delta, midi.NoteOff(DrumChannel, ev.key))
		}
		cursor = ev.tick
	}

	// Pad to the full bar grid so DAWs see an exact clip length.
	totalTicks := int64(len(p.Bars)) * int64(ticksPerBar)
	if cursor < totalTicks {
		notes.Close(uint32(totalTicks - cursor))
	} else {
		notes.Close(0)
	}
	if err := s.Add(notes); err != nil {
		return nil, encodingErrorf("add note track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, encodingErrorf("write smf: %v", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes a Pattern and writes it to disk.
func (e *Encoder) WriteFile(p *Pattern, path string) error {
	data, err := e.Encode(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func trackName(p *Pattern) string {
	name := string(p.Style) + " - " + p.Description
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func trackNameMessage(name string) smf.Message {
	data := append([]byte{0xFF, 0x03, byte(len(name))}, name...)
	return smf.Message(data)
}

func tempoMessage(bpm float64) smf.Message {
	microsPerBeat := uint32(60000000.0 / bpm)
	return smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsPerBeat >> 16),
		byte(microsPerBeat >> 8),
		byte(microsPerBeat),
	})
}
