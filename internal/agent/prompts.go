package agent

import (
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/enrich"
	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

const identifyPrompt = `Inspect this crop photo for disease.

Respond with ONLY a JSON object in this exact shape:
{
  "disease_detected": true,
  "disease_name": "Bacterial Blight",
  "crop_type": "Rice",
  "confidence_score": 92,
  "severity": "moderate",
  "visible_symptoms": ["symptom one", "symptom two"],
  "reasoning": "one or two sentences"
}

Rules:
1. severity is one of: none, mild, moderate, severe.
2. confidence_score is an integer from 0 to 100.
3. If the plant looks healthy, set disease_detected to false and leave the
   other fields empty.
4. Do not wrap the JSON in markdown fences or add commentary.`

func explainPrompt(diseaseName, cropType string) string {
	return fmt.Sprintf(`Explain the disease "%s" affecting %s to a farmer with no
agronomy background.

Respond with ONLY a JSON object:
{
  "simple_summary": "2-3 plain sentences",
  "what_causes_it": "the pathogen or cause",
  "how_it_spreads": "transmission paths",
  "favorable_conditions": ["condition one", "condition two"],
  "why_harmful": "impact on yield and plants"
}

Use simple words. If you genuinely do not know a field, use an empty string.`, diseaseName, cropType)
}

func researchPrompt(ident *model.Identification, results []gateway.SearchResult, excerpts []enrich.Excerpt) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Synthesize treatment options for %s on %s from the web search
results below.

Respond with ONLY a JSON object:
{
  "treatments": [
    {
      "type": "chemical",
      "product_name": "Copper Hydroxide",
      "active_ingredient": "Copper hydroxide 77%%",
      "dosage": "2-3 g/L of water",
      "application_method": "Foliar spray",
      "timing": "Early morning or late evening",
      "frequency": "Every 7-10 days",
      "safety_precautions": "Wear protective gloves and mask",
      "effectiveness": "high"
    }
  ]
}

Rules:
1. type is one of: chemical, organic, biological.
2. effectiveness is one of: low, medium, high.
3. List 2-4 distinct products, no duplicates.
4. Only include treatments supported by the search results.

Search results:
`, ident.DiseaseName, ident.CropType)

	for i, res := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n   %s\n", i+1, res.Title, res.URL, res.Snippet)
	}

	if len(excerpts) > 0 {
		b.WriteString("\nPage excerpts:\n")
		for _, ex := range excerpts {
			fmt.Fprintf(&b, "--- %s ---\n%s\n", ex.URL, ex.Text)
		}
	}

	return b.String()
}

func instructPrompt(expl *model.Explanation, selected model.Treatment) string {
	return fmt.Sprintf(`Write step-by-step application instructions for treating a crop
with %s (%s, %s).

Context: %s

Respond with ONLY a JSON object:
{
  "why_chosen": "one sentence",
  "preparation_steps": [
    {"step_number": 1, "title": "Mix Solution", "instruction": "..."}
  ],
  "application_steps": [
    {"step_number": 1, "title": "Remove Infected Leaves", "instruction": "..."}
  ]
}

Rules:
1. Dosage to respect: %s. Method: %s. Frequency: %s.
2. 2-4 preparation steps and 2-4 application steps, numbered from 1.
3. Each instruction is 1-2 concrete sentences a farmer can follow.`,
		selected.ProductName, selected.Type, selected.ActiveIngredient,
		expl.SimpleSummary,
		selected.Dosage, selected.ApplicationMethod, selected.Frequency)
}

func summarizePrompt(ident *model.Identification, expl *model.Explanation, research *model.TreatmentResearch, instr *model.Instructions) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Write the final summary of this crop disease diagnosis.

Diagnosis: %s on %s, severity %s, confidence %d%%.
`, ident.DiseaseName, ident.CropType, ident.Severity, ident.ConfidenceScore)

	if expl != nil {
		fmt.Fprintf(&b, "Disease: %s\n", expl.SimpleSummary)
	}
	if research != nil && len(research.Treatments) > 0 {
		fmt.Fprintf(&b, "Recommended treatment: %s\n", research.Treatments[0].ProductName)
	}
	if instr != nil && instr.SelectedTreatment != "" {
		fmt.Fprintf(&b, "Instructions prepared for: %s\n", instr.SelectedTreatment)
	}

	fmt.Fprintf(&b, `
Respond with ONLY a JSON object:
{
  "immediate_action_required": "what to do within 24 hours, or empty string",
  "prevention_for_future": ["tip one", "tip two", "tip three"]
}

Rules:
1. immediate_action_required is non-empty only for moderate or severe cases.
2. prevention_for_future has 3-5 practical tips.`)

	return b.String()
}
