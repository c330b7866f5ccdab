package formats

import (
	"encoding/json"
	"fmt"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// ParseJSON parses the JSON chart shape produced by external song
// generators: {title, genre, difficulty, notes: [{lane, time}]}.
// Note IDs are optional.
func ParseJSON(data []byte) (core.RawSong, error) {
	var raw core.RawSong
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.RawSong{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return raw, nil
}

// EncodeJSON writes a song in the same shape ParseJSON reads.
func EncodeJSON(song core.Song) ([]byte, error) {
	data, err := json.MarshalIndent(song.ToRaw(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}
