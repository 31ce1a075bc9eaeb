package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
)

// Instructor is the fourth stage: pick one treatment and turn it into
// numbered steps. Its parse failures degrade the report instead of killing
// the run, so the orchestrator treats its errors specially.
type Instructor struct {
	vision gateway.VisionGateway
}

// NewInstructor creates the instruction generation stage
func NewInstructor(vision gateway.VisionGateway) *Instructor {
	return &Instructor{vision: vision}
}

// SelectTreatment applies the selection policy: highest effectiveness, ties
// broken by the first chemical-type treatment, else the first entry.
func SelectTreatment(ts []model.Treatment) model.Treatment {
	bestRank := effRank(ts[0].Effectiveness)
	for _, t := range ts[1:] {
		if r := effRank(t.Effectiveness); r > bestRank {
			bestRank = r
		}
	}

	// Among entries tied at the best effectiveness, prefer the first chemical
	for _, t := range ts {
		if effRank(t.Effectiveness) == bestRank && t.Type == model.TreatmentChemical {
			return t
		}
	}
	for _, t := range ts {
		if effRank(t.Effectiveness) == bestRank {
			return t
		}
	}
	return ts[0]
}

func effRank(e model.Effectiveness) int {
	switch e {
	case model.EffectivenessHigh:
		return 2
	case model.EffectivenessMedium:
		return 1
	default:
		return 0
	}
}

type instructResponse struct {
	WhyChosen        string     `json:"why_chosen"`
	PreparationSteps []wireStep `json:"preparation_steps"`
	ApplicationSteps []wireStep `json:"application_steps"`
}

type wireStep struct {
	StepNumber  flexInt `json:"step_number"`
	Title       string  `json:"title"`
	Instruction string  `json:"instruction"`
}

// Instruct selects a treatment and generates its application steps. Step
// numbers are renumbered to a contiguous 1..n within each list regardless
// of what the model emitted.
func (a *Instructor) Instruct(ctx context.Context, expl *model.Explanation, treatments []model.Treatment) (*model.Instructions, error) {
	const op = "instruct"

	selected := SelectTreatment(treatments)

	raw, err := a.vision.AskText(ctx, instructPrompt(expl, selected))
	if err != nil {
		return nil, fmt.Errorf("ask model: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	var resp instructResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}

	prep := convertSteps(resp.PreparationSteps)
	apply := convertSteps(resp.ApplicationSteps)
	if len(prep) == 0 && len(apply) == 0 {
		return nil, parseErrf(op, "no steps in output")
	}

	model.RenumberSteps(prep)
	model.RenumberSteps(apply)

	why := strings.TrimSpace(resp.WhyChosen)
	if why == "" {
		why = fmt.Sprintf("Highest effectiveness among the researched options (%s)", selected.Effectiveness)
	}

	return &model.Instructions{
		SelectedTreatment: selected.ProductName,
		WhyChosen:         why,
		PreparationSteps:  prep,
		ApplicationSteps:  apply,
	}, nil
}

func convertSteps(in []wireStep) []model.Step {
	out := make([]model.Step, 0, len(in))
	for _, s := range in {
		title := strings.TrimSpace(s.Title)
		instr := strings.TrimSpace(s.Instruction)
		if title == "" && instr == "" {
			continue
		}
		out = append(out, model.Step{
			StepNumber:  int(s.StepNumber),
			Title:       title,
			Instruction: instr,
		})
	}
	return out
}
