// Package agent implements the five diagnosis stages as pure functions over
// validated records and the capability gateways. Stages hold no state
// between runs; failure handling is uniform typed errors so the orchestrator
// can classify them without string matching.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// Identifier is the first stage: look at the photo, name the disease
type Identifier struct {
	vision gateway.VisionGateway
}

// NewIdentifier creates the visual identification stage
func NewIdentifier(vision gateway.VisionGateway) *Identifier {
	return &Identifier{vision: vision}
}

type identifyResponse struct {
	DiseaseDetected flexBool `json:"disease_detected"`
	DiseaseName     string   `json:"disease_name"`
	CropType        string   `json:"crop_type"`
	ConfidenceScore flexInt  `json:"confidence_score"`
	Severity        string   `json:"severity"`
	VisibleSymptoms []string `json:"visible_symptoms"`
	Reasoning       string   `json:"reasoning"`
}

// Identify asks the vision model about the image and validates its verdict.
// Severity and confidence are normalized rather than failed; a missing
// disease name on a positive detection is a parse failure.
func (a *Identifier) Identify(ctx context.Context, img model.Image) (*model.Identification, error) {
	const op = "identify"

	raw, err := a.vision.AskVision(ctx, img, identifyPrompt)
	if err != nil {
		return nil, fmt.Errorf("ask vision: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	var resp identifyResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	detected := bool(resp.DiseaseDetected)
	name := strings.TrimSpace(resp.DiseaseName)
	if detected && name == "" {
		return nil, parseErrf(op, "disease detected but no disease_name given")
	}

	ident := &model.Identification{
		DiseaseDetected: detected,
		DiseaseName:     name,
		CropType:        strings.TrimSpace(resp.CropType),
		ConfidenceScore: model.ClampConfidence(int(resp.ConfidenceScore)),
		Severity:        model.ParseSeverity(resp.Severity),
		VisibleSymptoms: cleanStrings(resp.VisibleSymptoms),
		Reasoning:       strings.TrimSpace(resp.Reasoning),
	}
	if !detected {
		ident.Severity = model.SeverityNone
	}

	return ident, nil
}
