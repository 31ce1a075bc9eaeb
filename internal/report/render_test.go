package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

func sampleReport() *model.Report {
	return Finalize(&model.Report{
		Identification: model.Identification{
			DiseaseDetected: true,
			DiseaseName:     "Bacterial Blight",
			CropType:        "Rice",
			ConfidenceScore: 92,
			Severity:        model.SeverityModerate,
			VisibleSymptoms: []string{"Water-soaked lesions"},
		},
		Explanation: &model.Explanation{
			SimpleSummary:       "A bacterial disease of rice.",
			WhatCausesIt:        "Xanthomonas oryzae",
			HowItSpreads:        "Water and wind",
			FavorableConditions: []string{"High humidity"},
			WhyHarmful:          "Reduces yield",
		},
		Research: &model.TreatmentResearch{
			Treatments: []model.Treatment{
				{Type: model.TreatmentChemical, ProductName: "Copper Hydroxide", Effectiveness: model.EffectivenessHigh, Dosage: "2g/L"},
			},
			Sources: []string{"https://example.com/blight"},
		},
		Instructions: &model.Instructions{
			SelectedTreatment: "Copper Hydroxide",
			WhyChosen:         "Highest effectiveness",
			PreparationSteps:  []model.Step{{StepNumber: 1, Title: "Mix", Instruction: "Dissolve in water"}},
			ApplicationSteps:  []model.Step{{StepNumber: 1, Title: "Spray", Instruction: "Apply at dawn"}},
		},
		Summary: &model.Summary{
			ImmediateActionRequired: "Spray within 24 hours",
			PreventionForFuture:     []string{"Use resistant varieties"},
		},
	})
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := sampleReport()

	if err := NewRenderer(false).RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.DiagnosisID != report.DiagnosisID {
		t.Errorf("diagnosis ID changed in round trip: %s vs %s", got.DiagnosisID, report.DiagnosisID)
	}
	if got.Identification.DiseaseName != "Bacterial Blight" {
		t.Errorf("unexpected disease name: %s", got.Identification.DiseaseName)
	}
}

func TestMarkdown_SectionsInOrder(t *testing.T) {
	md := NewRenderer(true).Markdown(sampleReport())

	sections := []string{
		"# Crop Disease Diagnosis Report",
		"## Disease Identification",
		"## Disease Explanation",
		"## Treatment Options",
		"## Treatment Instructions",
		"## Summary",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(md, s)
		if idx < 0 {
			t.Fatalf("missing section %q", s)
		}
		if idx < last {
			t.Fatalf("section %q out of order", s)
		}
		last = idx
	}
	if !strings.Contains(md, "Copper Hydroxide") {
		t.Error("treatment missing from markdown")
	}
	if !strings.Contains(md, "Generated by cropdoctor") {
		t.Error("footer missing despite includeFooter")
	}
}

func TestMarkdown_HealthyPlant(t *testing.T) {
	report := Finalize(&model.Report{
		Identification: model.Identification{DiseaseDetected: false, Severity: model.SeverityNone},
	})
	md := NewRenderer(false).Markdown(report)

	if !strings.Contains(md, "appears healthy") {
		t.Error("healthy verdict missing")
	}
	if strings.Contains(md, "## Treatment Options") {
		t.Error("healthy report must not carry treatment sections")
	}
}

func TestMarkdown_PartialNote(t *testing.T) {
	report := sampleReport()
	report.Partial = true
	report.Instructions = &model.Instructions{}

	md := NewRenderer(false).Markdown(report)
	if !strings.Contains(md, "partial") {
		t.Error("partial note missing")
	}
	if strings.Contains(md, "## Treatment Instructions") {
		t.Error("empty instructions must not render a section")
	}
}
