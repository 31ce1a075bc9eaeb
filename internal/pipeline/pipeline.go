// Package pipeline orchestrates the five diagnosis stages over a crop photo:
// identify, explain, research, instruct, summarize. Each stage is a pure
// function of the records before it; the pipeline owns sequencing, skip
// logic, degradation and error classification.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hridoy-931/Agri-AI/internal/agent"
	"github.com/hridoy-931/Agri-AI/internal/cache"
	"github.com/hridoy-931/Agri-AI/internal/enrich"
	"github.com/hridoy-931/Agri-AI/internal/gateway"
	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/report"
)

// Pipeline orchestrates the complete diagnosis process
type Pipeline struct {
	identifier *agent.Identifier
	explainer  *agent.Explainer
	researcher *agent.Researcher
	instructor *agent.Instructor
	summarizer *agent.Summarizer
	verbose    bool
}

// Options controls a single diagnosis run
type Options struct {
	// WantTreatment enables the research and instruction stages. When false
	// a detected disease is still explained and summarized, but no treatment
	// search happens.
	WantTreatment bool
}

// DefaultOptions runs the full pipeline
func DefaultOptions() Options {
	return Options{WantTreatment: true}
}

// New creates a pipeline from configuration, wiring the gateways with their
// retry, rate-limit and cache decorators.
func New(cfg *model.Config) (*Pipeline, error) {
	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	vision, search, err := gateway.Build(cfg, store)
	if err != nil {
		return nil, err
	}

	var enricher *enrich.Fetcher
	if cfg.Enrich.Enabled {
		enricher = enrich.NewFetcher(cfg.Enrich)
	}

	p := NewWithGateways(vision, search, enricher)
	p.verbose = cfg.Output.Verbose
	return p, nil
}

// NewWithGateways creates a pipeline over already-built gateways. Used by New
// and by tests that substitute stub gateways.
func NewWithGateways(vision gateway.VisionGateway, search gateway.SearchGateway, enricher *enrich.Fetcher) *Pipeline {
	return &Pipeline{
		identifier: agent.NewIdentifier(vision),
		explainer:  agent.NewExplainer(vision),
		researcher: agent.NewResearcher(vision, search, enricher),
		instructor: agent.NewInstructor(vision),
		summarizer: agent.NewSummarizer(vision),
	}
}

// Diagnose runs the staged diagnosis over one image and assembles the final
// report. Cancellation is honored between stages: a stage that already
// started runs to completion, then the run stops.
//
// An instruction-stage parse failure degrades the run instead of failing it:
// the report comes back with Partial set, a warning, and empty instructions.
// Every other stage failure aborts with a *Error naming the stage.
func (p *Pipeline) Diagnose(ctx context.Context, img model.Image, opts Options) (*model.Report, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	if err := checkCancelled(ctx, StageIdentify); err != nil {
		return nil, err
	}
	p.progress("Identifying disease from image...")
	ident, err := p.identifier.Identify(ctx, img)
	if err != nil {
		return nil, classify(StageIdentify, err)
	}

	r := &model.Report{Identification: *ident}

	if !ident.DiseaseDetected {
		p.progress("No disease detected, plant appears healthy.")
		return report.Finalize(r), nil
	}

	if err := checkCancelled(ctx, StageExplain); err != nil {
		return nil, err
	}
	p.progress("Explaining %s...", ident.DiseaseName)
	expl, err := p.explainer.Explain(ctx, ident)
	if err != nil {
		return nil, classify(StageExplain, err)
	}
	r.Explanation = expl

	if opts.WantTreatment {
		if err := checkCancelled(ctx, StageResearch); err != nil {
			return nil, err
		}
		p.progress("Researching treatments...")
		research, err := p.researcher.Research(ctx, ident, expl)
		if err != nil {
			return nil, classify(StageResearch, err)
		}
		r.Research = research

		if err := checkCancelled(ctx, StageInstruct); err != nil {
			return nil, err
		}
		p.progress("Generating application instructions...")
		instr, err := p.instructor.Instruct(ctx, expl, research.Treatments)
		if err != nil {
			var perr *agent.ParseError
			if errors.As(err, &perr) {
				p.progress("Warning: instruction generation failed, continuing without instructions.")
				r.Partial = true
				r.Warnings = append(r.Warnings, "treatment instructions could not be generated")
				r.Instructions = &model.Instructions{}
			} else {
				return nil, classify(StageInstruct, err)
			}
		} else {
			r.Instructions = instr
		}
	}

	if err := checkCancelled(ctx, StageSummarize); err != nil {
		return nil, err
	}
	p.progress("Writing summary...")
	summary, err := p.summarizer.Summarize(ctx, ident, expl, r.Research, r.Instructions)
	if err != nil {
		return nil, classify(StageSummarize, err)
	}
	r.Summary = summary

	return report.Finalize(r), nil
}

func (p *Pipeline) progress(format string, args ...any) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func checkCancelled(ctx context.Context, next Stage) error {
	if err := ctx.Err(); err != nil {
		return stageErr(next, KindCancelled, err)
	}
	return nil
}

// classify maps a stage-internal error onto the pipeline error taxonomy
func classify(stage Stage, err error) *Error {
	var gerr *gateway.Error
	var perr *agent.ParseError
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return stageErr(stage, KindCancelled, err)
	case errors.Is(err, agent.ErrNoTreatmentFound):
		return stageErr(stage, KindNoTreatment, err)
	case errors.Is(err, agent.ErrIncompleteSummary):
		return stageErr(stage, KindIncompleteSummary, err)
	case errors.As(err, &perr):
		return stageErr(stage, KindParse, err)
	case errors.As(err, &gerr):
		return stageErr(stage, KindGateway, err)
	default:
		return stageErr(stage, KindGateway, err)
	}
}
