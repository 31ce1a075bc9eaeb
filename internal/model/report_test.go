package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// The export collaborator depends on reports surviving a JSON round-trip
// with every field intact.
func TestReportJSONRoundTrip(t *testing.T) {
	orig := &Report{
		DiagnosisID: "CROP_DIAG_1700000000",
		CreatedAt:   time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
		DateHuman:   "2023-11-14 22:13:20",
		Partial:     true,
		Warnings:    []string{"instruction_generator: degraded"},
		Identification: Identification{
			DiseaseDetected: true,
			DiseaseName:     "Bacterial Blight",
			CropType:        "Rice",
			ConfidenceScore: 92,
			Severity:        SeverityModerate,
			VisibleSymptoms: []string{"Yellow-brown lesions on leaf edges"},
			Reasoning:       "Multiple characteristic symptoms visible",
		},
		Explanation: &Explanation{
			SimpleSummary:       "Bacterial blight is a serious disease affecting rice crops.",
			WhatCausesIt:        "Caused by Xanthomonas oryzae bacteria",
			HowItSpreads:        "Spreads through water, wind, and contaminated tools",
			FavorableConditions: []string{"High humidity", "Warm temperatures"},
			WhyHarmful:          "Can reduce yield by 20-50% if left untreated",
		},
		Research: &TreatmentResearch{
			Treatments: []Treatment{
				{
					Type:              TreatmentChemical,
					ProductName:       "Copper Hydroxide",
					ActiveIngredient:  "Copper hydroxide 77%",
					Dosage:            "2-3 g/L of water",
					ApplicationMethod: "Foliar spray",
					Timing:            "Early morning",
					Frequency:         "Every 7-10 days",
					SafetyPrecautions: "Wear protective gloves and mask",
					Effectiveness:     EffectivenessHigh,
				},
			},
			Sources: []string{"https://example.com/blight"},
		},
		Instructions: &Instructions{},
		Summary: &Summary{
			ImmediateActionRequired: "Remove infected leaves immediately",
			PreventionForFuture:     []string{"Use disease-resistant rice varieties"},
		},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, orig.CreatedAt)
	}
	// Normalize timestamps so reflect.DeepEqual compares the rest
	got.CreatedAt = orig.CreatedAt
	if !reflect.DeepEqual(&got, orig) {
		t.Errorf("round-trip mismatch:\ngot:  %+v\nwant: %+v", &got, orig)
	}
}

func TestReportHealthy(t *testing.T) {
	r := &Report{Identification: Identification{DiseaseDetected: false}}
	if !r.Healthy() {
		t.Error("report without detected disease should be healthy")
	}
	r.Identification.DiseaseDetected = true
	if r.Healthy() {
		t.Error("report with detected disease should not be healthy")
	}
}
