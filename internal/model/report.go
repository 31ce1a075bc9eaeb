package model

import "time"

// Report is the complete diagnosis record handed to rendering/export
// collaborators. It is assembled once per run and never mutated afterwards;
// to change anything, run a new diagnosis.
//
// The optional sections are present iff a disease was detected and the
// corresponding stage succeeded. A healthy plant yields identification only.
type Report struct {
	DiagnosisID string    `json:"diagnosis_id"`
	CreatedAt   time.Time `json:"created_at"`
	DateHuman   string    `json:"date_human"`

	// Partial marks a report whose instruction stage degraded; the rest of
	// the diagnosis is still complete and trustworthy.
	Partial  bool     `json:"partial,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	Identification Identification     `json:"disease_identification"`
	Explanation    *Explanation       `json:"disease_explanation,omitempty"`
	Research       *TreatmentResearch `json:"treatment_research,omitempty"`
	Instructions   *Instructions      `json:"treatment_instructions,omitempty"`
	Summary        *Summary           `json:"final_summary,omitempty"`
}

// Healthy reports whether the diagnosis found no disease
func (r *Report) Healthy() bool {
	return !r.Identification.DiseaseDetected
}
