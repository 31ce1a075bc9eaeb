package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hridoy-931/Agri-AI/internal/model"
	"github.com/hridoy-931/Agri-AI/internal/util"
)

// Runner runs one diagnosis; satisfied by the pipeline
type Runner interface {
	Diagnose(ctx context.Context, img model.Image) (*model.Report, error)
}

// DiagnoseJob diagnoses a single image file
type DiagnoseJob struct {
	Path   string
	Runner Runner
}

// Execute loads the image and runs the pipeline
func (j *DiagnoseJob) Execute(ctx context.Context) Result {
	img, err := util.LoadImage(j.Path)
	if err != nil {
		return &DiagnoseResult{Path: j.Path, Error: err}
	}

	report, err := j.Runner.Diagnose(ctx, img)
	return &DiagnoseResult{Path: j.Path, Report: report, Error: err}
}

// DiagnoseResult is the outcome of one batch entry
type DiagnoseResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the diagnosis
func (r *DiagnoseResult) GetError() error {
	return r.Error
}

// BatchProcessor diagnoses many images concurrently. Pipeline runs are
// independent; only the gateways are shared, and they are safe for
// concurrent use.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{runner: runner, concurrency: concurrency}
}

// ProcessPaths diagnoses the given image files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DiagnoseResult {
	if len(paths) == 0 {
		return []*DiagnoseResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a goroutine so result draining below keeps the queue
	// moving on batches larger than the channel buffers.
	go func() {
		for _, path := range paths {
			pool.Submit(&DiagnoseJob{Path: path, Runner: b.runner})
		}
		pool.Done()
	}()

	results := pool.Wait()

	out := make([]*DiagnoseResult, len(results))
	for i, result := range results {
		out[i] = result.(*DiagnoseResult)
	}
	return out
}

// CollectPaths resolves a batch input: a directory yields its image files,
// anything else is read as a list file with one image path per line.
func CollectPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return collectImageDir(input)
	}
	return readPathList(input)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func collectImageDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func readPathList(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
