package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/sim"
	"github.com/NotAF0e/Gravitonic/internal/storage"
)

type ExportData struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Seed     int64              `json:"seed"`
	Dt       float64            `json:"dt"`
	SubSteps int                `json:"sub_steps"`
	Arena    config.ArenaConfig `json:"arena"`
	Frames   []FrameData        `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

type FrameData struct {
	Index  int        `json:"index"`
	Time   float64    `json:"time"`
	Bodies []BodyData `json:"bodies"`
}

type BodyData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// WriteJSON encodes a stored run and its recorded frames as indented JSON.
func WriteJSON(w io.Writer, meta storage.RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		ID:       meta.ID,
		Name:     meta.Name,
		Seed:     meta.Seed,
		Dt:       meta.Dt,
		SubSteps: meta.SubSteps,
		Arena:    meta.Arena,
		Frames:   make([]FrameData, len(frames)),
		Metrics:  meta.Metrics,
	}

	for i, fr := range frames {
		fd := FrameData{Index: fr.Index, Time: fr.Time, Bodies: make([]BodyData, len(fr.Bodies))}
		for j, b := range fr.Bodies {
			fd.Bodies[j] = BodyData{
				X:      b.Current.X,
				Y:      b.Current.Y,
				Radius: b.Radius,
				Color:  fmt.Sprintf("#%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B),
			}
		}
		data.Frames[i] = fd
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
