package formats

import (
	"bytes"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// MIDI layout of an exported chart: one track, fixed tempo, one pitch per lane.
const (
	MIDITicksPerQuarter = 960
	MIDITempoBPM        = 120
	MIDIChannel         = 0
	MIDIVelocity        = 100
	MIDINoteMs          = 100 // Sounding length of an exported note
)

// LanePitches maps lanes to MIDI keys (C4 D4 E4 F4).
var LanePitches = [core.LaneCount]uint8{60, 62, 64, 65}

// msPerQuarter at the export tempo.
const msPerQuarter = 60000 / MIDITempoBPM

func msToTicks(ms int64) uint32 {
	return uint32(ms * MIDITicksPerQuarter / msPerQuarter)
}

type midiEvent struct {
	tick uint32
	on   bool
	key  uint8
}

// EncodeMIDI renders a chart as a standard MIDI file so it can be auditioned
// or edited in a sequencer.
func EncodeMIDI(song core.Song) ([]byte, error) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(MIDITicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(song.Title))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(MIDITempoBPM))

	// Next onset per lane, so a note is cut before the lane sounds again
	nextOn := make([]int64, len(song.Notes))
	last := [core.LaneCount]int64{-1, -1, -1, -1}
	for i := len(song.Notes) - 1; i >= 0; i-- {
		n := song.Notes[i]
		nextOn[i] = last[n.Lane]
		last[n.Lane] = n.TimeMs
	}

	events := make([]midiEvent, 0, 2*len(song.Notes))
	for i, n := range song.Notes {
		on := msToTicks(n.TimeMs)
		off := msToTicks(n.TimeMs + MIDINoteMs)
		if next := nextOn[i]; next >= 0 {
			if limit := msToTicks(next); limit > on && off >= limit {
				off = limit - 1
			}
		}
		if off <= on {
			off = on + 1
		}
		key := LanePitches[n.Lane]
		events = append(events, midiEvent{tick: on, on: true, key: key}, midiEvent{tick: off, key: key})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	var pos uint32
	for _, ev := range events {
		delta := ev.tick - pos
		pos = ev.tick
		if ev.on {
			track.Add(delta, midi.NoteOn(MIDIChannel, ev.key, MIDIVelocity))
		} else {
			track.Add(delta, midi.NoteOff(MIDIChannel, ev.key))
		}
	}
	track.Close(0)

	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("midi: adding track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("midi: writing file: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseMIDI reads note-on events from every track of a MIDI file. Times
// follow the file's tempo map. Keys exported by EncodeMIDI map back to their
// lane; any other key is folded onto a lane by pitch class.
func ParseMIDI(data []byte) (core.RawSong, error) {
	rd, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return core.RawSong{}, fmt.Errorf("midi: reading file: %w", err)
	}

	var raw core.RawSong
	for _, tr := range rd.Tracks {
		var abs int64
		for _, ev := range tr {
			abs += int64(ev.Delta)

			var ch, key, vel uint8
			if !midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				continue
			}
			micros := rd.TimeAt(abs)
			raw.Notes = append(raw.Notes, core.RawNote{
				Lane: laneForKey(key),
				Time: float64(micros) / 1000,
			})
		}
	}

	// Tracks are read one after another; restore time order for stable IDs.
	sort.SliceStable(raw.Notes, func(i, j int) bool {
		return raw.Notes[i].Time < raw.Notes[j].Time
	})
	return raw, nil
}

func laneForKey(key uint8) int {
	for lane, p := range LanePitches {
		if p == key {
			return lane
		}
	}
	return int(key%12) * core.LaneCount / 12
}
