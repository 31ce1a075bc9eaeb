package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// Summarizer is the final stage: urgency and prevention guidance drawn from
// every upstream record that exists.
type Summarizer struct {
	vision gateway.VisionGateway
}

// NewSummarizer creates the summary stage
func NewSummarizer(vision gateway.VisionGateway) *Summarizer {
	return &Summarizer{vision: vision}
}

type summarizeResponse struct {
	ImmediateActionRequired string   `json:"immediate_action_required"`
	PreventionForFuture     []string `json:"prevention_for_future"`
}

// Summarize produces the final summary. A diagnosis without at least one
// prevention tip is useless to the grower, so that is a stage failure; the
// immediate-action field is forced to agree with the identified severity.
func (a *Summarizer) Summarize(ctx context.Context, ident *model.Identification, expl *model.Explanation, research *model.TreatmentResearch, instr *model.Instructions) (*model.Summary, error) {
	const op = "summarize"

	raw, err := a.vision.AskText(ctx, summarizePrompt(ident, expl, research, instr))
	if err != nil {
		return nil, fmt.Errorf("ask model: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	var resp summarizeResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	prevention := cleanStrings(resp.PreventionForFuture)
	if len(prevention) == 0 {
		return nil, ErrIncompleteSummary
	}

	action := strings.TrimSpace(resp.ImmediateActionRequired)
	if ident.Severity.RequiresAction() {
		if action == "" {
			action = fmt.Sprintf("Begin treating %s within 24 hours and remove visibly infected plant material to limit spread.", ident.DiseaseName)
		}
	} else {
		action = ""
	}

	return &model.Summary{
		ImmediateActionRequired: action,
		PreventionForFuture:     prevention,
	}, nil
}
