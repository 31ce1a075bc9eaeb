package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/pipeline"
	"github.com/hridoy-931/Agri-AI/internal/report"
	"github.com/hridoy-931/Agri-AI/internal/util"
	"github.com/spf13/cobra"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	visionProv    string
	visionModel   string
	searchResults int
	noCache       bool
	noFooter      bool
	noTreatment   bool
	enrichPages   bool
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <image>",
	Short: "Diagnose a crop disease from a single photo",
	Long: `Diagnose analyzes a single crop photo to:
- Identify the disease, severity, and confidence
- Explain the disease in plain language
- Research treatment options from live web search
- Generate step-by-step application instructions
- Summarize what to do now and how to prevent recurrence

Example:
  cropdoctor diagnose leaf.jpg
  cropdoctor diagnose leaf.jpg --json report.json --md report.md
  cropdoctor diagnose leaf.jpg --provider ollama --model llava
  cropdoctor diagnose leaf.jpg --no-treatment`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)

	// Output flags
	diagnoseCmd.Flags().StringVar(&outJSON, "json", "diagnosis.json", "output JSON path")
	diagnoseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	diagnoseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	diagnoseCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall diagnosis timeout")
	diagnoseCmd.Flags().StringVar(&visionProv, "provider", "openrouter", "vision provider (openrouter, openai, ollama)")
	diagnoseCmd.Flags().StringVar(&visionModel, "model", "", "vision model name (provider default when empty)")
	diagnoseCmd.Flags().IntVar(&searchResults, "search-results", 8, "max web search results to consume")
	diagnoseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable gateway response caching")
	diagnoseCmd.Flags().BoolVar(&noTreatment, "no-treatment", false, "skip treatment research and instructions")
	diagnoseCmd.Flags().BoolVar(&enrichPages, "enrich", false, "fetch search result pages to ground treatment synthesis")
}

// buildConfig merges flags and environment into a pipeline configuration
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Vision.Provider = visionProv
	if visionModel != "" {
		cfg.Vision.Model = visionModel
	}
	cfg.Search.MaxResults = searchResults
	cfg.Cache.Enabled = !noCache
	cfg.Enrich.Enabled = enrichPages
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	switch visionProv {
	case "openrouter", "":
		cfg.Vision.APIKey = os.Getenv("OPENROUTER_API_KEY")
		if cfg.Vision.APIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
		}
	case "openai":
		cfg.Vision.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Vision.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if visionModel == "" {
			cfg.Vision.Model = "gpt-4o-mini"
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Vision.BaseURL = baseURL
		}
		if visionModel == "" {
			cfg.Vision.Model = "llava"
		}
	default:
		return nil, fmt.Errorf("unknown vision provider: %s", visionProv)
	}

	if !noTreatment {
		cfg.Search.APIKey = os.Getenv("SERPER_API_KEY")
		if cfg.Search.APIKey == "" {
			return nil, fmt.Errorf("SERPER_API_KEY environment variable not set (or pass --no-treatment)")
		}
	}

	return cfg, nil
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Diagnosing: %s\n", imagePath)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", visionProv)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	img, err := util.LoadImage(imagePath)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Diagnose(ctx, img, pipeline.Options{WantTreatment: !noTreatment})
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(result)
	return nil
}
