package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/fieldtrace/internal/trace"
)

// Store persists traced frames under a data directory, one run per
// subdirectory: metadata.json plus segments.csv. Charge layouts are
// not written; a run records trace results and provenance only.
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
	ID           string         `json:"id"`
	Scene        string         `json:"scene"`
	Timestamp    time.Time      `json:"timestamp"`
	MaxSteps     int            `json:"max_steps"`
	Resolution   int            `json:"resolution"`
	Charges      int            `json:"charges"`
	Traces       int            `json:"traces"`
	Segments     int            `json:"segments"`
	MeanSteps    float64        `json:"mean_steps"`
	Terminations map[string]int `json:"terminations"`
}

func terminationCounts(st *trace.Stats) map[string]int {
	counts := make(map[string]int, 4)
	for _, t := range []trace.Termination{trace.Absorbed, trace.Stalled, trace.Escaped, trace.Exhausted} {
		counts[t.String()] = st.Count(t)
	}
	return counts
}

// Save writes one traced frame and returns its run id.
func (s *Store) Save(scene string, cfg trace.FrameConfig, numCharges int, frame *trace.Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", scene, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Scene:        scene,
		Timestamp:    time.Now(),
		MaxSteps:     cfg.MaxSteps,
		Resolution:   cfg.Resolution,
		Charges:      numCharges,
		Traces:       frame.Stats.Traces,
		Segments:     len(frame.Segments),
		MeanSteps:    frame.Stats.MeanSteps(),
		Terminations: terminationCounts(&frame.Stats),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "segments.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"x1", "y1", "z1", "x2", "y2", "z2", "r", "g", "b", "a"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, seg := range frame.Segments {
		row := []string{
			formatCoord(seg.Start.X), formatCoord(seg.Start.Y), formatCoord(seg.Start.Z),
			formatCoord(seg.End.X), formatCoord(seg.End.Y), formatCoord(seg.End.Z),
			strconv.Itoa(int(seg.Color.R)), strconv.Itoa(int(seg.Color.G)),
			strconv.Itoa(int(seg.Color.B)), strconv.Itoa(int(seg.Color.A)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSegments(runID string) ([]trace.Segment, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "segments.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []trace.Segment{}, nil
	}

	segments := make([]trace.Segment, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 10 {
			continue
		}

		coords := make([]float64, 6)
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok {
			continue
		}

		rgba := make([]uint8, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.Atoi(rec[6+i])
			if err != nil {
				ok = false
				break
			}
			rgba[i] = uint8(v)
		}
		if !ok {
			continue
		}

		seg := trace.Segment{
			Color: trace.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]},
		}
		seg.Start.X, seg.Start.Y, seg.Start.Z = coords[0], coords[1], coords[2]
		seg.End.X, seg.End.Y, seg.End.Z = coords[3], coords[4], coords[5]
		segments = append(segments, seg)
	}

	return segments, nil
}
