package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/mftree/internal/genealogy"
	"github.com/ppiankov/mftree/internal/model"
)

// Renderer writes reports in the supported formats.
type Renderer struct {
	includeFooter bool
	stdout        io.Writer
}

// NewRenderer creates a renderer printing summaries to stdout.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, stdout: os.Stdout}
}

// SetOutput redirects summaries, mainly for tests.
func (r *Renderer) SetOutput(w io.Writer) {
	r.stdout = w
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderYAML writes the report as YAML.
func (r *Renderer) RenderYAML(report *model.Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder
	r.WriteMarkdown(&b, report)
	return writeFile(path, []byte(b.String()))
}

// RenderTextFile writes one record per line.
func (r *Renderer) RenderTextFile(report *model.Report, path string) error {
	var b strings.Builder
	if err := WriteText(&b, report.Records); err != nil {
		return err
	}
	return writeFile(path, []byte(b.String()))
}

// WriteMarkdown renders report into w.
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) {
	cfg := report.Config
	fmt.Fprintf(w, "# Family tree: %s\n\n", report.Subject())

	fmt.Fprintf(w, "## Configuration\n\n")
	fmt.Fprintf(w, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(w, "| Seed | `%s` |\n", cfg.Seed)
	fmt.Fprintf(w, "| Original | `%s` (children %d, partners %d) |\n", cfg.Original.ID, cfg.Original.NumberOfChildren, cfg.Original.NumberOfPartners)
	fmt.Fprintf(w, "| Average life | %d |\n", cfg.AverageLife)
	fmt.Fprintf(w, "| Infant death rate | %d/%d |\n", cfg.InfantDeathRate.Value, cfg.InfantDeathRate.Base)
	fmt.Fprintf(w, "| Total fertility rate | %d/%d |\n", cfg.TotalFertilityRate.Value, cfg.TotalFertilityRate.Base)
	fmt.Fprintf(w, "| Probability of having partner | %d/%d |\n", cfg.ProbabilityOfHavingPartner.Value, cfg.ProbabilityOfHavingPartner.Base)
	fmt.Fprintf(w, "| Max generation | %d |\n", report.MaxGeneration)
	fmt.Fprintf(w, "| Config hash | `%s` |\n\n", report.ConfigHash)

	fmt.Fprintf(w, "## Census\n\n")
	fmt.Fprintf(w, "%d records, %d people, %d partners, %d children (%d single-parent).\n\n",
		report.Census.Records, report.Census.People, report.Census.Partners, report.Census.Children, report.Census.SingleParentBirths)
	fmt.Fprintf(w, "| Generation | People | Partners | Two-parent births | Single-parent births |\n|---|---|---|---|---|\n")
	for _, l := range report.Census.Layers {
		fmt.Fprintf(w, "| %d | %d | %d | %d | %d |\n", l.Generation, l.People, l.Partners, l.TwoParentBirths, l.SingleParentBirths)
	}

	fmt.Fprintf(w, "\n## Records\n\n```\n")
	_ = WriteText(w, report.Records)
	fmt.Fprintf(w, "```\n")

	if r.includeFooter {
		fmt.Fprintf(w, "\n---\n\nGenerated by mftree. The same configuration always yields the same tree.\n")
	}
}

// RenderSummary prints a short summary.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Fprintln(r.stdout)
	fmt.Fprintf(r.stdout, "Tree: %s\n", report.Subject())
	fmt.Fprintf(r.stdout, "  Generations: %d (max %d)\n", report.Census.DeepestGeneration, report.MaxGeneration)
	fmt.Fprintf(r.stdout, "  Records:     %d\n", report.Census.Records)
	fmt.Fprintf(r.stdout, "  People:      %d\n", report.Census.People)
	fmt.Fprintf(r.stdout, "  Partners:    %d\n", report.Census.Partners)
	fmt.Fprintf(r.stdout, "  Children:    %d (%d single-parent)\n", report.Census.Children, report.Census.SingleParentBirths)
	fmt.Fprintln(r.stdout)
}

// WriteText writes one formatted record per line.
func WriteText(w io.Writer, records []genealogy.FamilyRelationship) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, FormatRecord(rec)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRecord renders a record on a single line.
func FormatRecord(rec genealogy.FamilyRelationship) string {
	switch rel := rec.(type) {
	case genealogy.Original:
		return fmt.Sprintf("Original(%s)", formatInfo(rel.Info))
	case genealogy.Child:
		other := "-"
		if rel.OtherParentID != nil {
			other = string(*rel.OtherParentID)
		}
		return fmt.Sprintf("Child(gen=%d, parent=%s, other_parent=%s, %s)", rel.Generation, rel.ParentID, other, formatInfo(rel.Info))
	case genealogy.Partner:
		return fmt.Sprintf("Partner(person=%s, partner=%s)", rel.PersonID, rel.Partner.ID)
	}
	return fmt.Sprintf("Unknown(%T)", rec)
}

func formatInfo(info genealogy.PersonInfo) string {
	return fmt.Sprintf("id=%s, children=%d, partners=%d", info.ID, info.NumberOfChildren, info.NumberOfPartners)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
