package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// per-body columns, in order
var bodyColumns = []string{"x", "y", "vx", "vy", "ax", "ay"}

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
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Masses    []float64          `json:"masses"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv under a new run directory and
// returns the run ID.
func (s *Store) Save(scene string, dt, duration float64, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scene, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     scene,
		Timestamp: now,
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}
	if len(result.Frames) > 0 {
		meta.Masses = result.Frames[0].Mass
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writeFrames(w, result); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFrames(w *csv.Writer, result *sim.Result) error {
	if len(result.Frames) == 0 {
		return nil
	}

	n := result.Frames[0].Len()
	header := []string{"time"}
	for i := 0; i < n; i++ {
		for _, c := range bodyColumns {
			header = append(header, fmt.Sprintf("%s%d", c, i))
		}
	}
	header = append(header, "acted")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, f := range result.Frames {
		row := []string{format(f.Time)}
		for j := 0; j < n; j++ {
			row = append(row, format(f.X[j]), format(f.Y[j]), format(f.VX[j]), format(f.VY[j]), format(f.AX[j]), format(f.AY[j]))
		}

		var acted []string
		if i < len(result.Acted) {
			for _, d := range result.Acted[i] {
				acted = append(acted, d.Name)
			}
		}
		row = append(row, strings.Join(acted, ";"))

		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the metadata of every stored run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadFrames reads the frames of a run back. Masses come from the metadata
// and the acted column is returned per frame.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, [][]string, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []dynamo.Frame{}, [][]string{}, nil
	}

	n := (len(records[0]) - 2) / len(bodyColumns)
	frames := make([]dynamo.Frame, 0, len(records)-1)
	acted := make([][]string, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2+n*len(bodyColumns) {
			return nil, nil, fmt.Errorf("run %s: short record with %d fields", runID, len(record))
		}

		vals := make([]float64, 1+n*len(bodyColumns))
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: %w", runID, err)
			}
		}

		f := dynamo.Frame{
			Time: vals[0],
			Mass: make([]float64, n),
			X:    make([]float64, n), Y: make([]float64, n),
			VX: make([]float64, n), VY: make([]float64, n),
			AX: make([]float64, n), AY: make([]float64, n),
		}
		copy(f.Mass, meta.Masses)
		for j := 0; j < n; j++ {
			base := 1 + j*len(bodyColumns)
			f.X[j], f.Y[j] = vals[base], vals[base+1]
			f.VX[j], f.VY[j] = vals[base+2], vals[base+3]
			f.AX[j], f.AY[j] = vals[base+4], vals[base+5]
		}
		frames = append(frames, f)

		last := record[len(record)-1]
		if last == "" {
			acted = append(acted, nil)
		} else {
			acted = append(acted, strings.Split(last, ";"))
		}
	}

	return frames, acted, nil
}
