package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mftree/internal/config"
	"github.com/ppiankov/mftree/internal/pipeline"
	"github.com/ppiankov/mftree/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate trees for many config files in parallel",
	Long: `Batch reads config file paths from a list file (one per line) and
generates one tree per config. Trees are generated in parallel, each on its
own worker; a single tree is always produced sequentially.

Example:
  mftree batch trees.txt
  mftree batch trees.txt --concurrency 8 --output-dir ./trees`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./mftree-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(stderr, "\n")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Concurrency.Workers = concurrency

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, newLogger())
	processor := worker.NewBatchProcessor(p, config.LoadFile, cfg.Concurrency.Workers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	names := outputNames(results)
	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		out := pipeline.Outputs{
			JSON:     filepath.Join(outputDir, names[i]+".json"),
			Markdown: filepath.Join(outputDir, names[i]+".md"),
		}

		renderer := p.Renderer()
		if err := renderer.RenderJSON(result.Report, out.JSON); err != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, out.Markdown); err != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		cached := ""
		if result.Cached {
			cached = " (cached)"
		}
		fmt.Fprintf(stderr, "✓ %s: %d records%s\n", result.Report.Subject(), result.Report.Census.Records, cached)
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d configs\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d configs failed", failureCount, len(results))
	}
	return nil
}

// outputNames picks a file stem per result from its config file name.
// Repeated names, compared case-insensitively, get a -2, -3, ... suffix in
// list order.
func outputNames(results []*worker.GenerateResult) []string {
	names := make([]string, len(results))
	used := make(map[string]bool)
	for i, r := range results {
		base := sanitizeFilename(strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path)))
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename makes s safe to use as a file name.
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)
	if s == "" || s == "." || s == ".." {
		s = "tree"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
