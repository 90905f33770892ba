package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ppiankov/mftree/internal/cache"
	"github.com/ppiankov/mftree/internal/census"
	"github.com/ppiankov/mftree/internal/genealogy"
	"github.com/ppiankov/mftree/internal/model"
)

// Pipeline orchestrates a generation run: cache lookup, generation,
// census and report assembly.
type Pipeline struct {
	generator *genealogy.Generator
	counter   *census.Counter
	cache     cache.Cache // nil when caching is disabled
	renderer  *Renderer
	logger    *slog.Logger
	config    *model.Config
}

// NewPipeline creates a pipeline for cfg. logger may be nil.
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		generator: genealogy.NewGenerator(genealogy.WithLogger(logger)),
		counter:   census.NewCounter(),
		cache:     cache.New(cfg.Cache),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		logger:    logger,
		config:    cfg,
	}
}

// RunResult is the outcome of one run.
type RunResult struct {
	Report *model.Report
	Cached bool
}

// Run generates the tree described by tree. Cancellation is only checked
// before generation starts; Generate itself runs to completion.
func (p *Pipeline) Run(ctx context.Context, tree model.TreeConfig) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := tree.Genealogy()
	max := tree.Max()
	key := cache.Key(cfg, max)

	if p.cache != nil {
		if data, ok := p.cache.Get(key); ok {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				p.logger.Debug("cache hit", "key", key)
				return &RunResult{Report: &report, Cached: true}, nil
			}
			p.logger.Warn("dropping undecodable cache entry", "key", key)
			_ = p.cache.Delete(key)
		}
	}

	p.logger.Debug("generating tree", "seed", cfg.Seed, "original", cfg.Original.ID, "max_generation", max.Uint64())
	records := p.generator.Generate(cfg, max)

	report := &model.Report{
		Config:        tree,
		ConfigHash:    fmt.Sprintf("%016x", genealogy.HashConfig(cfg)),
		MaxGeneration: max,
		Records:       records,
		Census:        p.counter.Count(records),
	}

	if p.cache != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		if err := p.cache.Set(key, data, 0); err != nil {
			// A failed cache write does not fail the run.
			p.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return &RunResult{Report: report}, nil
}

// Outputs lists the files a report is rendered to; empty paths are skipped.
type Outputs struct {
	JSON     string
	YAML     string
	Markdown string
	Text     string
}

// RenderReport writes report to every configured output and prints a
// summary to stdout.
func (p *Pipeline) RenderReport(report *model.Report, out Outputs) error {
	if out.JSON != "" {
		if err := p.renderer.RenderJSON(report, out.JSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Info("wrote JSON", "path", out.JSON)
	}

	if out.YAML != "" {
		if err := p.renderer.RenderYAML(report, out.YAML); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		p.logger.Info("wrote YAML", "path", out.YAML)
	}

	if out.Markdown != "" {
		if err := p.renderer.RenderMarkdown(report, out.Markdown); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Info("wrote Markdown", "path", out.Markdown)
	}

	if out.Text != "" {
		if err := p.renderer.RenderTextFile(report, out.Text); err != nil {
			return fmt.Errorf("render text: %w", err)
		}
		p.logger.Info("wrote text", "path", out.Text)
	}

	p.renderer.RenderSummary(report)

	return nil
}

// Renderer returns the pipeline's renderer.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
