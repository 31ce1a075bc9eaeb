package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

func TestSelectTreatment_Policy(t *testing.T) {
	tests := []struct {
		name string
		ts   []model.Treatment
		want string
	}{
		{
			name: "highest effectiveness wins",
			ts: []model.Treatment{
				{ProductName: "A", Type: model.TreatmentOrganic, Effectiveness: model.EffectivenessMedium},
				{ProductName: "B", Type: model.TreatmentOrganic, Effectiveness: model.EffectivenessHigh},
			},
			want: "B",
		},
		{
			name: "chemical breaks effectiveness tie",
			ts: []model.Treatment{
				{ProductName: "A", Type: model.TreatmentOrganic, Effectiveness: model.EffectivenessHigh},
				{ProductName: "B", Type: model.TreatmentChemical, Effectiveness: model.EffectivenessHigh},
			},
			want: "B",
		},
		{
			name: "first entry when no chemical among best",
			ts: []model.Treatment{
				{ProductName: "A", Type: model.TreatmentOrganic, Effectiveness: model.EffectivenessHigh},
				{ProductName: "B", Type: model.TreatmentBiological, Effectiveness: model.EffectivenessHigh},
				{ProductName: "C", Type: model.TreatmentChemical, Effectiveness: model.EffectivenessLow},
			},
			want: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectTreatment(tt.ts); got.ProductName != tt.want {
				t.Errorf("SelectTreatment = %s, want %s", got.ProductName, tt.want)
			}
		})
	}
}

func blightTreatments() []model.Treatment {
	return []model.Treatment{
		{ProductName: "Copper Hydroxide", Type: model.TreatmentChemical, Effectiveness: model.EffectivenessHigh,
			Dosage: "2-3 g/L of water", ApplicationMethod: "Foliar spray", Frequency: "Every 7-10 days"},
		{ProductName: "Neem Oil Solution", Type: model.TreatmentOrganic, Effectiveness: model.EffectivenessMedium},
	}
}

func TestInstructor_RenumbersSteps(t *testing.T) {
	vision := &fixedVision{answer: `{
		"why_chosen": "High effectiveness, widely available",
		"preparation_steps": [
			{"step_number": 4, "title": "Mix Solution", "instruction": "Dissolve in water."},
			{"step_number": 9, "title": "Prepare Equipment", "instruction": "Clean the sprayer."}
		],
		"application_steps": [
			{"step_number": 0, "title": "Remove Infected Leaves", "instruction": "Cut and dispose."},
			{"step_number": 0, "title": "Apply Spray", "instruction": "Cover both leaf sides."},
			{"step_number": 0, "title": "Monitor Progress", "instruction": "Check after 3-4 days."}
		]
	}`}

	instr, err := NewInstructor(vision).Instruct(context.Background(), blightExplanation(), blightTreatments())
	if err != nil {
		t.Fatalf("Instruct failed: %v", err)
	}

	if instr.SelectedTreatment != "Copper Hydroxide" {
		t.Errorf("selected = %s, want Copper Hydroxide", instr.SelectedTreatment)
	}
	for i, s := range instr.PreparationSteps {
		if s.StepNumber != i+1 {
			t.Errorf("preparation step %d numbered %d", i, s.StepNumber)
		}
	}
	for i, s := range instr.ApplicationSteps {
		if s.StepNumber != i+1 {
			t.Errorf("application step %d numbered %d", i, s.StepNumber)
		}
	}
	if len(instr.PreparationSteps) != 2 || len(instr.ApplicationSteps) != 3 {
		t.Errorf("unexpected step counts: %d prep, %d apply",
			len(instr.PreparationSteps), len(instr.ApplicationSteps))
	}
}

func TestInstructor_EmptyStepsIsParseError(t *testing.T) {
	vision := &fixedVision{answer: `{"why_chosen": "because", "preparation_steps": [], "application_steps": []}`}

	_, err := NewInstructor(vision).Instruct(context.Background(), blightExplanation(), blightTreatments())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestInstructor_ProseOutputIsParseError(t *testing.T) {
	vision := &fixedVision{answer: "First mix the solution, then spray it."}

	_, err := NewInstructor(vision).Instruct(context.Background(), blightExplanation(), blightTreatments())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestInstructor_DefaultsWhyChosen(t *testing.T) {
	vision := &fixedVision{answer: `{
		"preparation_steps": [{"step_number": 1, "title": "Mix", "instruction": "Mix it."}],
		"application_steps": [{"step_number": 1, "title": "Spray", "instruction": "Spray it."}]
	}`}

	instr, err := NewInstructor(vision).Instruct(context.Background(), blightExplanation(), blightTreatments())
	if err != nil {
		t.Fatalf("Instruct failed: %v", err)
	}
	if instr.WhyChosen == "" {
		t.Error("why_chosen should fall back to a default")
	}
}
