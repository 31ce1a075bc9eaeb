package model

import (
	"sort"
	"strings"
)

// Severity grades how far a detected disease has progressed
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ParseSeverity maps free-form model text onto the closed severity enum.
// Unrecognized text defaults to SeverityNone rather than failing the stage.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityMild:
		return SeverityMild
	case SeverityModerate:
		return SeverityModerate
	case SeveritySevere:
		return SeveritySevere
	default:
		return SeverityNone
	}
}

// RequiresAction reports whether the severity warrants an immediate action notice
func (s Severity) RequiresAction() bool {
	return s == SeverityModerate || s == SeveritySevere
}

// TreatmentType categorizes how a treatment acts
type TreatmentType string

const (
	TreatmentChemical   TreatmentType = "chemical"
	TreatmentOrganic    TreatmentType = "organic"
	TreatmentBiological TreatmentType = "biological"
)

// ParseTreatmentType maps model text onto the treatment type enum.
// Unrecognized text defaults to organic (the least hazardous recommendation).
func ParseTreatmentType(s string) TreatmentType {
	switch TreatmentType(strings.ToLower(strings.TrimSpace(s))) {
	case TreatmentChemical:
		return TreatmentChemical
	case TreatmentBiological:
		return TreatmentBiological
	default:
		return TreatmentOrganic
	}
}

// Effectiveness rates how well a treatment is expected to work
type Effectiveness string

const (
	EffectivenessLow    Effectiveness = "low"
	EffectivenessMedium Effectiveness = "medium"
	EffectivenessHigh   Effectiveness = "high"
)

// ParseEffectiveness maps model text onto the effectiveness enum, defaulting to low
func ParseEffectiveness(s string) Effectiveness {
	switch Effectiveness(strings.ToLower(strings.TrimSpace(s))) {
	case EffectivenessHigh:
		return EffectivenessHigh
	case EffectivenessMedium:
		return EffectivenessMedium
	default:
		return EffectivenessLow
	}
}

func (e Effectiveness) rank() int {
	switch e {
	case EffectivenessHigh:
		return 2
	case EffectivenessMedium:
		return 1
	default:
		return 0
	}
}

// ClampConfidence forces a model-reported confidence into [0,100]
func ClampConfidence(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Identification is the Visual Identifier's verdict on the image.
// It is terminal when DiseaseDetected is false.
type Identification struct {
	DiseaseDetected bool     `json:"disease_detected"`
	DiseaseName     string   `json:"disease_name,omitempty"`
	CropType        string   `json:"crop_type,omitempty"`
	ConfidenceScore int      `json:"confidence_score"`
	Severity        Severity `json:"severity"`
	VisibleSymptoms []string `json:"visible_symptoms,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
}

// Explanation describes the detected disease in plain language.
// Sub-fields the model could not supply carry an explicit "not available"
// sentinel, never an empty string.
type Explanation struct {
	SimpleSummary       string   `json:"simple_summary"`
	WhatCausesIt        string   `json:"what_causes_it"`
	HowItSpreads        string   `json:"how_it_spreads"`
	FavorableConditions []string `json:"favorable_conditions"`
	WhyHarmful          string   `json:"why_harmful"`
}

// Treatment is one concrete remedy option. Immutable value type.
type Treatment struct {
	Type              TreatmentType `json:"type"`
	ProductName       string        `json:"product_name"`
	ActiveIngredient  string        `json:"active_ingredient"`
	Dosage            string        `json:"dosage"`
	ApplicationMethod string        `json:"application_method"`
	Timing            string        `json:"timing"`
	Frequency         string        `json:"frequency"`
	SafetyPrecautions string        `json:"safety_precautions"`
	Effectiveness     Effectiveness `json:"effectiveness"`
}

// TreatmentResearch holds the synthesized treatment options, ordered by
// descending effectiveness, plus the search result URLs they were drawn from.
type TreatmentResearch struct {
	Treatments []Treatment `json:"treatments"`
	Sources    []string    `json:"sources,omitempty"`
}

// Step is a single numbered instruction
type Step struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Instruction string `json:"instruction"`
}

// Instructions tells the grower how to apply the selected treatment.
// Step numbers are 1-indexed and contiguous within each list.
type Instructions struct {
	SelectedTreatment string `json:"selected_treatment"`
	WhyChosen         string `json:"why_chosen,omitempty"`
	PreparationSteps  []Step `json:"preparation_steps"`
	ApplicationSteps  []Step `json:"application_steps"`
}

// Summary wraps up the diagnosis with urgency and prevention guidance
type Summary struct {
	ImmediateActionRequired string   `json:"immediate_action_required,omitempty"`
	PreventionForFuture     []string `json:"prevention_for_future"`
}

// DedupeTreatments removes duplicate treatments by case-insensitive product
// name, keeping the first occurrence
func DedupeTreatments(ts []Treatment) []Treatment {
	seen := make(map[string]bool, len(ts))
	out := ts[:0:0]
	for _, t := range ts {
		key := strings.ToLower(strings.TrimSpace(t.ProductName))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// SortTreatments orders treatments by descending effectiveness. The sort is
// stable: ties keep their original synthesis order.
func SortTreatments(ts []Treatment) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Effectiveness.rank() > ts[j].Effectiveness.rank()
	})
}

// RenumberSteps rewrites step numbers to the contiguous sequence 1..n,
// preserving order
func RenumberSteps(steps []Step) {
	for i := range steps {
		steps[i].StepNumber = i + 1
	}
}
