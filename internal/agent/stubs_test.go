package agent

import (
	"context"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// fixedVision answers every ask with the same canned text
type fixedVision struct {
	answer string
	err    error
	calls  int
}

func (v *fixedVision) Name() string { return "fixed" }

func (v *fixedVision) AskVision(ctx context.Context, img model.Image, prompt string) (string, error) {
	v.calls++
	return v.answer, v.err
}

func (v *fixedVision) AskText(ctx context.Context, prompt string) (string, error) {
	v.calls++
	return v.answer, v.err
}

// fixedSearch returns canned search results
type fixedSearch struct {
	results   []gateway.SearchResult
	err       error
	calls     int
	lastQuery string
}

func (s *fixedSearch) Name() string { return "fixed" }

func (s *fixedSearch) Search(ctx context.Context, query string) ([]gateway.SearchResult, error) {
	s.calls++
	s.lastQuery = query
	return s.results, s.err
}

func blightIdent() *model.Identification {
	return &model.Identification{
		DiseaseDetected: true,
		DiseaseName:     "Bacterial Blight",
		CropType:        "Rice",
		ConfidenceScore: 92,
		Severity:        model.SeverityModerate,
	}
}

func blightExplanation() *model.Explanation {
	return &model.Explanation{
		SimpleSummary:       "Bacterial blight is a serious disease affecting rice crops.",
		WhatCausesIt:        "Caused by Xanthomonas oryzae bacteria",
		HowItSpreads:        "Spreads through water, wind, and contaminated tools",
		FavorableConditions: []string{"High humidity"},
		WhyHarmful:          "Can reduce yield by 20-50% if left untreated",
	}
}
