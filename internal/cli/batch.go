package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/pipeline"
	"github.com/hridoy-931/Agri-AI/internal/report"
	"github.com/hridoy-931/Agri-AI/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list>",
	Short: "Diagnose multiple crop photos in parallel",
	Long: `Batch processes multiple images concurrently:
- Accepts a directory of images or a text file listing image paths
- Runs diagnoses in parallel with a configurable worker count
- Writes an individual JSON and Markdown report per image

Example:
  cropdoctor batch ./photos
  cropdoctor batch images.txt --concurrency 8 --output-dir ./reports
  cropdoctor batch ./photos --no-treatment --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent diagnoses")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./cropdoctor-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&visionProv, "provider", "openrouter", "vision provider (openrouter, openai, ollama)")
	batchCmd.Flags().StringVar(&visionModel, "model", "", "vision model name (provider default when empty)")
	batchCmd.Flags().IntVar(&searchResults, "search-results", 8, "max web search results to consume")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable gateway response caching")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noTreatment, "no-treatment", false, "skip treatment research and instructions")
	batchCmd.Flags().BoolVar(&enrichPages, "enrich", false, "fetch search result pages to ground treatment synthesis")
}

// pipelineRunner binds the pipeline and its per-batch options to the worker
// pool's runner contract.
type pipelineRunner struct {
	p    *pipeline.Pipeline
	opts pipeline.Options
}

func (r *pipelineRunner) Diagnose(ctx context.Context, img model.Image) (*model.Report, error) {
	return r.p.Diagnose(ctx, img, r.opts)
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	paths, err := worker.CollectPaths(input)
	if err != nil {
		return fmt.Errorf("collect images: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", input)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch: %d image(s), %d worker(s), output %s\n\n", len(paths), concurrency, outputDir)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	runner := &pipelineRunner{p: p, opts: pipeline.Options{WantTreatment: !noTreatment}}
	processor := worker.NewBatchProcessor(runner, concurrency)
	results := processor.ProcessPaths(ctx, paths)

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		ident := result.Report.Identification
		if ident.DiseaseDetected {
			fmt.Fprintf(os.Stderr, "ok   %s: %s (%s, %d%%)\n", result.Path, ident.DiseaseName, ident.Severity, ident.ConfidenceScore)
		} else {
			fmt.Fprintf(os.Stderr, "ok   %s: healthy\n", result.Path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d total, %d ok, %d failed, reports in %s\n", len(results), successCount, failureCount, outputDir)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d diagnoses failed", failureCount)
	}
	return nil
}

// sanitizeFilename derives a safe report file stem from an image path
func sanitizeFilename(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "image"
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
