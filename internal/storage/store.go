package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/physics"
	"github.com/NotAF0e/Gravitonic/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	SubSteps  int                `json:"sub_steps"`
	Frames    int                `json:"frames"`
	Arena     config.ArenaConfig `json:"arena"`
	Bodies    int                `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the metadata, the recorded frames and the per-frame series
// into a fresh run directory and returns its id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.createRunDir(fmt.Sprintf("%s_%d", meta.Name, now.UnixMilli()))
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.FramesRun
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error { return WriteFrames(w, result.Frames) }); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

// createRunDir claims a directory named base, or base_1, base_2 and so on
// when a run saved within the same millisecond already holds it.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", "", err
	}
	for seq := 0; ; seq++ {
		id := base
		if seq > 0 {
			id = fmt.Sprintf("%s_%d", base, seq)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// emptyFrameBody marks the single row written for a frame with no bodies.
const emptyFrameBody = -1

// WriteFrames writes frames in the frames.csv layout, one row per body.
// A frame without bodies gets one row with body -1 and zeroed fields so
// it survives a reload.
func WriteFrames(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "time", "body", "x", "y", "radius", "r", "g", "b"}); err != nil {
		return err
	}

	for _, fr := range frames {
		if len(fr.Bodies) == 0 {
			row := []string{
				strconv.Itoa(fr.Index),
				strconv.FormatFloat(fr.Time, 'f', 6, 64),
				strconv.Itoa(emptyFrameBody),
				"0", "0", "0", "0", "0", "0",
			}
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}
		for i, b := range fr.Bodies {
			row := []string{
				strconv.Itoa(fr.Index),
				strconv.FormatFloat(fr.Time, 'f', 6, 64),
				strconv.Itoa(i),
				strconv.FormatFloat(b.Current.X, 'f', 4, 64),
				strconv.FormatFloat(b.Current.Y, 'f', 4, 64),
				strconv.FormatFloat(b.Radius, 'f', 4, 64),
				strconv.Itoa(int(b.Color.R)),
				strconv.Itoa(int(b.Color.G)),
				strconv.Itoa(int(b.Color.B)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "bodies", "kinetic_energy"}); err != nil {
		return err
	}
	for i := range result.Counts {
		energy := 0.0
		if i < len(result.Energy) {
			energy = result.Energy[i]
		}
		row := []string{strconv.Itoa(i), strconv.Itoa(result.Counts[i]), strconv.FormatFloat(energy, 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the recorded frames back. Only the fields written to
// the CSV are restored; Old equals Current.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for line, record := range records {
		if len(record) < 9 {
			return nil, fmt.Errorf("%s line %d: expected 9 fields, got %d", framesFile, line+2, len(record))
		}
		nums, err := parseFloats(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, line+2, err)
		}

		index := int(nums[0])
		if len(frames) == 0 || frames[len(frames)-1].Index != index {
			frames = append(frames, sim.Frame{Index: index, Time: nums[1]})
		}
		if int(nums[2]) == emptyFrameBody {
			continue
		}
		pos := r2.Vec{X: nums[3], Y: nums[4]}
		fr := &frames[len(frames)-1]
		fr.Bodies = append(fr.Bodies, physics.Body{
			Radius:  nums[5],
			Current: pos,
			Old:     pos,
			Color:   color.RGBA{R: uint8(nums[6]), G: uint8(nums[7]), B: uint8(nums[8]), A: 255},
		})
	}

	return frames, nil
}

// LoadSeries returns the per-frame body counts and kinetic energy.
func (s *Store) LoadSeries(runID string) (counts []float64, energy []float64, err error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}

	counts = make([]float64, 0, len(records))
	energy = make([]float64, 0, len(records))
	for _, record := range records {
		if len(record) < 3 {
			continue
		}
		nums, err := parseFloats(record)
		if err != nil {
			continue
		}
		counts = append(counts, nums[1])
		energy = append(energy, nums[2])
	}

	return counts, energy, nil
}

// readCSV returns every record after the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseFloats(record []string) ([]float64, error) {
	out := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
