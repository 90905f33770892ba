package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/mftree/internal/pipeline"
)

var (
	outJSON string
	outYAML string
	outMD   string
	outText string
	noCache bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a family tree and write reports",
	Long: `Generate expands the originating person generation by generation
until the maximum generation is reached, then writes the records.

Example:
  mftree generate
  mftree generate --seed my-family --max-generation 8 --json tree.json
  mftree generate --config family.yaml --md tree.md --text -`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	generateCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	generateCmd.Flags().StringVar(&outText, "text", "-", "output text listing path (- for stdout, empty to skip)")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache")

	generateCmd.Flags().String("seed", "", "seed string (overrides config)")
	generateCmd.Flags().Uint64("max-generation", 0, "maximum generation (overrides config)")
	_ = viper.BindPFlag("tree.seed", generateCmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("tree.max_generation", generateCmd.Flags().Lookup("max-generation"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	logger := newLogger()
	p := pipeline.NewPipeline(cfg, logger)
	p.Renderer().SetOutput(cmd.ErrOrStderr())

	result, err := p.Run(context.Background(), cfg.Tree)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}
	if result.Cached {
		logger.Debug("report served from cache")
	}

	out := pipeline.Outputs{JSON: outJSON, YAML: outYAML, Markdown: outMD}
	if outText != "-" {
		out.Text = outText
	}
	if err := p.RenderReport(result.Report, out); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outText == "-" {
		if err := pipeline.WriteText(cmd.OutOrStdout(), result.Report.Records); err != nil {
			return fmt.Errorf("write records: %w", err)
		}
	}

	return nil
}
