package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// notAvailable fills sub-fields the model could not supply so downstream
// consumers never need per-field nil checks
const notAvailable = "not available"

// Explainer is the second stage: describe the disease in plain language.
// Callers only invoke it on a positive identification.
type Explainer struct {
	vision gateway.VisionGateway
}

// NewExplainer creates the disease explanation stage
func NewExplainer(vision gateway.VisionGateway) *Explainer {
	return &Explainer{vision: vision}
}

type explainResponse struct {
	SimpleSummary       string   `json:"simple_summary"`
	WhatCausesIt        string   `json:"what_causes_it"`
	HowItSpreads        string   `json:"how_it_spreads"`
	FavorableConditions []string `json:"favorable_conditions"`
	WhyHarmful          string   `json:"why_harmful"`
}

// Explain produces the explanation record for the identified disease
func (a *Explainer) Explain(ctx context.Context, ident *model.Identification) (*model.Explanation, error) {
	const op = "explain"

	raw, err := a.vision.AskText(ctx, explainPrompt(ident.DiseaseName, ident.CropType))
	if err != nil {
		return nil, fmt.Errorf("ask model: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	var resp explainResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	expl := &model.Explanation{
		SimpleSummary:       orNotAvailable(resp.SimpleSummary),
		WhatCausesIt:        orNotAvailable(resp.WhatCausesIt),
		HowItSpreads:        orNotAvailable(resp.HowItSpreads),
		FavorableConditions: cleanStrings(resp.FavorableConditions),
		WhyHarmful:          orNotAvailable(resp.WhyHarmful),
	}
	if len(expl.FavorableConditions) == 0 {
		expl.FavorableConditions = []string{notAvailable}
	}

	return expl, nil
}

func orNotAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	return s
}
