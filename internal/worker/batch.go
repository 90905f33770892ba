package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/mftree/internal/model"
	"github.com/ppiankov/mftree/internal/pipeline"
)

// Runner generates one tree.
type Runner interface {
	Run(ctx context.Context, tree model.TreeConfig) (*pipeline.RunResult, error)
}

// Loader reads the configuration stored at path.
type Loader func(path string) (*model.Config, error)

// GenerateJob generates the tree configured in one file.
type GenerateJob struct {
	Path   string
	Load   Loader
	Runner Runner
}

// Execute loads the config and runs it. Each job produces its tree on a
// single goroutine; only separate jobs run in parallel.
func (j *GenerateJob) Execute(ctx context.Context) Result {
	cfg, err := j.Load(j.Path)
	if err != nil {
		return &GenerateResult{Path: j.Path, Error: fmt.Errorf("load: %w", err)}
	}
	res, err := j.Runner.Run(ctx, cfg.Tree)
	if err != nil {
		return &GenerateResult{Path: j.Path, Error: err}
	}
	return &GenerateResult{Path: j.Path, Report: res.Report, Cached: res.Cached}
}

// GenerateResult is the outcome of a GenerateJob.
type GenerateResult struct {
	Path   string
	Report *model.Report
	Cached bool
	Error  error
}

// GetError returns the job error, if any.
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many config files concurrently.
type BatchProcessor struct {
	runner      Runner
	load        Loader
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(runner Runner, load Loader, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		load:        load,
		concurrency: concurrency,
	}
}

// ProcessPaths generates one tree per config path. Results follow the
// order of paths.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*GenerateResult {
	if len(paths) == 0 {
		return []*GenerateResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&GenerateJob{
			Path:   path,
			Load:   b.load,
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	out := make([]*GenerateResult, len(paths))
	for i := range paths {
		if i < len(results) && results[i] != nil {
			out[i] = results[i].(*GenerateResult)
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = fmt.Errorf("job not executed")
		}
		out[i] = &GenerateResult{Path: paths[i], Error: err}
	}

	return out
}

// ProcessFile reads config paths from a list file and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*GenerateResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads one path per line, skipping blanks, comments and
// duplicates. Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
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

		if !filepath.IsAbs(line) {
			line = filepath.Join(filepath.Dir(filePath), line)
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
