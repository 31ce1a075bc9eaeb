package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/model"
)

// Renderer writes reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer; the footer is a provenance note appended
// to markdown output
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable markdown document,
// sections in diagnosis order
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders the full report document as a string
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Crop Disease Diagnosis Report\n\n")
	fmt.Fprintf(&b, "**Diagnosis ID:** %s\n", report.DiagnosisID)
	fmt.Fprintf(&b, "**Date:** %s\n\n", report.DateHuman)

	if report.Partial {
		b.WriteString("> **Note:** this report is partial; treatment instructions could not be generated.\n\n")
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(&b, "> Warning: %s\n\n", w)
	}

	ident := report.Identification
	b.WriteString("## Disease Identification\n\n")
	if !ident.DiseaseDetected {
		b.WriteString("No disease detected. The plant appears healthy.\n\n")
	} else {
		fmt.Fprintf(&b, "- **Disease:** %s\n", ident.DiseaseName)
		fmt.Fprintf(&b, "- **Crop:** %s\n", ident.CropType)
		fmt.Fprintf(&b, "- **Confidence:** %d%%\n", ident.ConfidenceScore)
		fmt.Fprintf(&b, "- **Severity:** %s\n", ident.Severity)
		if len(ident.VisibleSymptoms) > 0 {
			fmt.Fprintf(&b, "- **Visible symptoms:** %s\n", strings.Join(ident.VisibleSymptoms, "; "))
		}
		b.WriteString("\n")
	}

	if e := report.Explanation; e != nil {
		b.WriteString("## Disease Explanation\n\n")
		fmt.Fprintf(&b, "%s\n\n", e.SimpleSummary)
		fmt.Fprintf(&b, "- **What causes it:** %s\n", e.WhatCausesIt)
		fmt.Fprintf(&b, "- **How it spreads:** %s\n", e.HowItSpreads)
		fmt.Fprintf(&b, "- **Favorable conditions:** %s\n", strings.Join(e.FavorableConditions, "; "))
		fmt.Fprintf(&b, "- **Why it is harmful:** %s\n\n", e.WhyHarmful)
	}

	if res := report.Research; res != nil {
		b.WriteString("## Treatment Options\n\n")
		for i, t := range res.Treatments {
			fmt.Fprintf(&b, "### %d. %s (%s, %s effectiveness)\n\n", i+1, t.ProductName, t.Type, t.Effectiveness)
			writeField(&b, "Active ingredient", t.ActiveIngredient)
			writeField(&b, "Dosage", t.Dosage)
			writeField(&b, "Application method", t.ApplicationMethod)
			writeField(&b, "Timing", t.Timing)
			writeField(&b, "Frequency", t.Frequency)
			writeField(&b, "Safety precautions", t.SafetyPrecautions)
			b.WriteString("\n")
		}
		if len(res.Sources) > 0 {
			b.WriteString("**Sources:**\n\n")
			for _, s := range res.Sources {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}
	}

	if instr := report.Instructions; instr != nil && instr.SelectedTreatment != "" {
		b.WriteString("## Treatment Instructions\n\n")
		fmt.Fprintf(&b, "**Selected treatment:** %s\n\n", instr.SelectedTreatment)
		if instr.WhyChosen != "" {
			fmt.Fprintf(&b, "**Why chosen:** %s\n\n", instr.WhyChosen)
		}
		writeSteps(&b, "Preparation", instr.PreparationSteps)
		writeSteps(&b, "Application", instr.ApplicationSteps)
	}

	if s := report.Summary; s != nil {
		b.WriteString("## Summary\n\n")
		if s.ImmediateActionRequired != "" {
			fmt.Fprintf(&b, "**Immediate action required:** %s\n\n", s.ImmediateActionRequired)
		}
		b.WriteString("**Prevention for the future:**\n\n")
		for _, p := range s.PreventionForFuture {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by cropdoctor. AI-assisted diagnosis; verify with a local agronomist before large-scale treatment.\n")
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func writeSteps(b *strings.Builder, heading string, steps []model.Step) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, s := range steps {
		fmt.Fprintf(b, "%d. **%s**: %s\n", s.StepNumber, s.Title, s.Instruction)
	}
	b.WriteString("\n")
}

// RenderSummary prints a short terminal summary of the diagnosis
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n=== Diagnosis %s ===\n", report.DiagnosisID)
	ident := report.Identification
	if !ident.DiseaseDetected {
		fmt.Println("No disease detected. The plant appears healthy.")
		return
	}
	fmt.Printf("Disease:    %s (%s)\n", ident.DiseaseName, ident.CropType)
	fmt.Printf("Confidence: %d%%\n", ident.ConfidenceScore)
	fmt.Printf("Severity:   %s\n", ident.Severity)
	if res := report.Research; res != nil && len(res.Treatments) > 0 {
		fmt.Printf("Treatments: %d option(s), best: %s\n", len(res.Treatments), res.Treatments[0].ProductName)
	}
	if s := report.Summary; s != nil && s.ImmediateActionRequired != "" {
		fmt.Printf("Action:     %s\n", s.ImmediateActionRequired)
	}
	if report.Partial {
		fmt.Println("Note: partial report, treatment instructions unavailable.")
	}
}
