package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

const (
	metadataFile   = "metadata.json"
	traceFile      = "trace.csv"
	worldLinesFile = "worldlines.csv"
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
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Variant      string             `json:"variant,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	C            float64            `json:"c"`
	Dt           float64            `json:"dt"`
	Frames       int                `json:"frames"`
	StepFraction float64            `json:"step_fraction"`
	Watch        *config.Vec3       `json:"watch,omitempty"`
	Metrics      map[string]float64 `json:"metrics"`
	Rebuilds     int                `json:"rebuilds"`
	Info         []string           `json:"info,omitempty"`
}

// NewMetadata fills the run description from a configuration.
func NewMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		Preset:       cfg.Preset,
		Variant:      cfg.Variant,
		Seed:         cfg.Seed,
		C:            cfg.C,
		Dt:           cfg.Dt,
		Frames:       cfg.Frames,
		StepFraction: cfg.StepFraction,
		Watch:        cfg.Watch,
	}
	if result != nil {
		meta.Metrics = result.Metrics
		meta.Rebuilds = result.Rebuilds
		meta.Info = result.Info
	}
	return meta
}

// WorldLines collects the integrated history of every dynamic charge.
func WorldLines(set chargeset.ChargeSet) [][]spacetime.Vector4 {
	eom := chargeset.Dynamics(set)
	if eom == nil {
		return nil
	}
	lines := make([][]spacetime.Vector4, len(eom.Charges()))
	for i, ch := range eom.Charges() {
		lines[i] = ch.Line.Samples()
	}
	return lines
}

// Save writes a run under a fresh id and returns the id.
func (s *Store) Save(meta RunMetadata, result *sim.Result, lines [][]spacetime.Vector4) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Preset, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, traceFile), traceRows(result)); err != nil {
		return "", err
	}
	if len(lines) > 0 {
		if err := writeCSV(filepath.Join(runDir, worldLinesFile), worldLineRows(lines)); err != nil {
			return "", err
		}
	}
	return meta.ID, nil
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

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

var traceHeader = []string{"frame", "t", "ct", "c", "sources", "substeps", "gamma", "ex", "ey", "ez", "bx", "by", "bz"}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func traceRows(result *sim.Result) [][]string {
	rows := [][]string{traceHeader}
	if result == nil {
		return rows
	}
	for _, tp := range result.Trace {
		row := []string{
			strconv.Itoa(tp.Frame),
			formatFloat(tp.T),
			formatFloat(tp.CT),
			formatFloat(tp.C),
			strconv.Itoa(tp.Sources),
			strconv.Itoa(tp.SubSteps),
			formatFloat(tp.Gamma),
		}
		if tp.Field != nil {
			f := tp.Field
			row = append(row,
				formatFloat(f.E.X), formatFloat(f.E.Y), formatFloat(f.E.Z),
				formatFloat(f.B.X), formatFloat(f.B.Y), formatFloat(f.B.Z))
		} else {
			row = append(row, "", "", "", "", "", "")
		}
		rows = append(rows, row)
	}
	return rows
}

func worldLineRows(lines [][]spacetime.Vector4) [][]string {
	rows := [][]string{{"charge", "x", "y", "z", "ct"}}
	for i, line := range lines {
		for _, p := range line {
			rows = append(rows, []string{
				strconv.Itoa(i),
				formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z), formatFloat(p.CT),
			})
		}
	}
	return rows
}

// List returns stored runs, newest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
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

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadTrace reads the per-frame trace of a run. Rows whose field columns are
// empty come back with a nil Field.
func (s *Store) LoadTrace(runID string) ([]sim.TracePoint, error) {
	records, err := s.readCSV(runID, traceFile)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.TracePoint{}, nil
	}

	trace := make([]sim.TracePoint, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < len(traceHeader) {
			return nil, fmt.Errorf("trace row %d: expected %d columns, got %d", i+1, len(traceHeader), len(record))
		}
		v, err := parseFloats(record[1:7])
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		tp := sim.TracePoint{
			Frame:    frame,
			T:        v[0],
			CT:       v[1],
			C:        v[2],
			Sources:  int(v[3]),
			SubSteps: int(v[4]),
			Gamma:    v[5],
		}
		if record[7] != "" {
			f, err := parseFloats(record[7:13])
			if err != nil {
				return nil, fmt.Errorf("trace row %d: %w", i+1, err)
			}
			tp.Field = &probe.Sample{
				E: spacetime.Vec3(f[0], f[1], f[2]),
				B: spacetime.Vec3(f[3], f[4], f[5]),
			}
		}
		trace = append(trace, tp)
	}
	return trace, nil
}

func (s *Store) LoadWorldLines(runID string) ([][]spacetime.Vector4, error) {
	records, err := s.readCSV(runID, worldLinesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var lines [][]spacetime.Vector4
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("worldline row %d: %w", i, err)
		}
		v, err := parseFloats(record[1:5])
		if err != nil {
			return nil, fmt.Errorf("worldline row %d: %w", i, err)
		}
		for len(lines) <= idx {
			lines = append(lines, nil)
		}
		lines[idx] = append(lines[idx], spacetime.Vec4(v[0], v[1], v[2], v[3]))
	}
	return lines, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// RunExport is the JSON document written by ExportJSON.
type RunExport struct {
	Metadata   RunMetadata           `json:"metadata"`
	Trace      []TraceRecord         `json:"trace"`
	WorldLines [][]spacetime.Vector4 `json:"worldlines,omitempty"`
}

type TraceRecord struct {
	Frame    int         `json:"frame"`
	T        float64     `json:"t"`
	CT       float64     `json:"ct"`
	C        float64     `json:"c"`
	Sources  int         `json:"sources"`
	SubSteps int         `json:"substeps"`
	Gamma    float64     `json:"gamma"`
	E        *[3]float64 `json:"e,omitempty"`
	B        *[3]float64 `json:"b,omitempty"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}
	lines, err := s.LoadWorldLines(runID)
	if err != nil {
		return err
	}

	doc := RunExport{Metadata: *meta, Trace: make([]TraceRecord, len(trace)), WorldLines: lines}
	for i, tp := range trace {
		rec := TraceRecord{
			Frame:    tp.Frame,
			T:        tp.T,
			CT:       tp.CT,
			C:        tp.C,
			Sources:  tp.Sources,
			SubSteps: tp.SubSteps,
			Gamma:    tp.Gamma,
		}
		if tp.Field != nil {
			e := [3]float64{tp.Field.E.X, tp.Field.E.Y, tp.Field.E.Z}
			b := [3]float64{tp.Field.B.X, tp.Field.B.Y, tp.Field.B.Z}
			rec.E, rec.B = &e, &b
		}
		doc.Trace[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
