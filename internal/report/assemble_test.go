package report

import (
	"strings"
	"testing"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

func TestNewDiagnosisID_Format(t *testing.T) {
	now := time.Now()
	id := NewDiagnosisID(now)
	if !strings.HasPrefix(id, "CROP_DIAG_") {
		t.Fatalf("unexpected ID format: %s", id)
	}
}

func TestNewDiagnosisID_Monotonic(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id := NewDiagnosisID(now)
		if seen[id] {
			t.Fatalf("duplicate ID issued: %s", id)
		}
		seen[id] = true
	}
}

func TestFinalize(t *testing.T) {
	r := &model.Report{
		Identification: model.Identification{
			DiseaseDetected: true,
			DiseaseName:     "Bacterial Blight",
			Severity:        model.SeverityModerate,
		},
	}
	Finalize(r)

	if r.DiagnosisID == "" {
		t.Error("Finalize must assign a diagnosis ID")
	}
	if r.CreatedAt.IsZero() {
		t.Error("Finalize must set the creation timestamp")
	}
	if _, err := time.Parse("2006-01-02 15:04:05", r.DateHuman); err != nil {
		t.Errorf("DateHuman not in expected layout: %q", r.DateHuman)
	}
}
