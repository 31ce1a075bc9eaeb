package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/enrich"
	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// Researcher is the third stage: search the web and synthesize treatment
// options. The only stage that touches the search gateway.
type Researcher struct {
	vision   gateway.VisionGateway
	search   gateway.SearchGateway
	enricher *enrich.Fetcher // nil when page enrichment is disabled
}

// NewResearcher creates the treatment research stage
func NewResearcher(vision gateway.VisionGateway, search gateway.SearchGateway, enricher *enrich.Fetcher) *Researcher {
	return &Researcher{vision: vision, search: search, enricher: enricher}
}

type researchResponse struct {
	Treatments []struct {
		Type              string `json:"type"`
		ProductName       string `json:"product_name"`
		ActiveIngredient  string `json:"active_ingredient"`
		Dosage            string `json:"dosage"`
		ApplicationMethod string `json:"application_method"`
		Timing            string `json:"timing"`
		Frequency         string `json:"frequency"`
		SafetyPrecautions string `json:"safety_precautions"`
		Effectiveness     string `json:"effectiveness"`
	} `json:"treatments"`
}

// Research searches for treatments and synthesizes them into an ordered,
// deduplicated list. Returns ErrNoTreatmentFound when nothing usable comes
// back.
func (a *Researcher) Research(ctx context.Context, ident *model.Identification, expl *model.Explanation) (*model.TreatmentResearch, error) {
	const op = "research"

	query := fmt.Sprintf("%s %s treatment", ident.DiseaseName, ident.CropType)
	results, err := a.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	var excerpts []enrich.Excerpt
	if a.enricher != nil {
		excerpts = a.enricher.Excerpts(ctx, results)
	}

	raw, err := a.vision.AskText(ctx, researchPrompt(ident, results, excerpts))
	if err != nil {
		return nil, fmt.Errorf("synthesize treatments: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	var resp researchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	treatments := make([]model.Treatment, 0, len(resp.Treatments))
	for _, t := range resp.Treatments {
		name := strings.TrimSpace(t.ProductName)
		if name == "" {
			continue
		}
		treatments = append(treatments, model.Treatment{
			Type:              model.ParseTreatmentType(t.Type),
			ProductName:       name,
			ActiveIngredient:  strings.TrimSpace(t.ActiveIngredient),
			Dosage:            strings.TrimSpace(t.Dosage),
			ApplicationMethod: strings.TrimSpace(t.ApplicationMethod),
			Timing:            strings.TrimSpace(t.Timing),
			Frequency:         strings.TrimSpace(t.Frequency),
			SafetyPrecautions: strings.TrimSpace(t.SafetyPrecautions),
			Effectiveness:     model.ParseEffectiveness(t.Effectiveness),
		})
	}

	treatments = model.DedupeTreatments(treatments)
	model.SortTreatments(treatments)

	if len(treatments) == 0 {
		return nil, ErrNoTreatmentFound
	}

	sources := make([]string, 0, len(results))
	for _, res := range results {
		sources = append(sources, res.URL)
	}

	return &model.TreatmentResearch{
		Treatments: treatments,
		Sources:    sources,
	}, nil
}
