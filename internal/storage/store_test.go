package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/balls/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames: [][]float64{
			{1.0, 0.0, 5.0, 5.0},
			{0.9, -0.1, 5.0, 5.5},
		},
		Times: []float64{0.0, 0.016},
		Radii: []float64{25, 25},
		Metrics: map[string]float64{
			"kinetic_energy": 1.5,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "default", Seed: 42, Dt: 0.016, Duration: 1}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "default" {
		t.Errorf("expected preset 'default', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Entities != 2 || meta.Frames != 2 {
		t.Errorf("expected 2 entities and 2 frames, got %d and %d", meta.Entities, meta.Frames)
	}
	if meta.Metrics["kinetic_energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["kinetic_energy"])
	}

	frames, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames and times, got %d and %d", len(frames), len(times))
	}
	if frames[1][1] != -0.1 || frames[1][3] != 5.5 {
		t.Errorf("unexpected frame contents %v", frames[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{Preset: "test"}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("runs saved in the same second must get distinct ids")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Preset: "test"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(filepath.Join(runDir, "states.csv"))
	if err != nil {
		t.Fatalf("states.csv not readable: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("time,x0,y0,x1,y1\n")) {
		t.Errorf("unexpected header in %q", data)
	}
}

func TestStoreSaveColors(t *testing.T) {
	st := New(t.TempDir())
	colors := ColorMetadata{Background: "#112233", Entity: "#ff0000", Boundary: "#00ff00"}

	runID, err := st.Save(RunMetadata{Preset: "default", Colors: colors}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Colors != colors {
		t.Errorf("expected colors %+v, got %+v", colors, meta.Colors)
	}
}

func TestStoreSaveFailureRemovesRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	result := testResult()
	result.Metrics["kinetic_energy"] = math.NaN()

	runID, err := st.Save(RunMetadata{Preset: "broken"}, result)
	if err == nil {
		t.Fatal("expected error for unencodable metadata")
	}
	if runID != "" {
		t.Errorf("expected no run id, got %q", runID)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directories, found %d", len(entries))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "test", Gravity: [2]float64{0, 10}}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.ID != runID || len(out.Frames) != 2 || out.Gravity[1] != 10 {
		t.Errorf("unexpected export %+v", out)
	}
}
