package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/mftree/internal/genealogy"
	"github.com/ppiankov/mftree/internal/model"
	"github.com/ppiankov/mftree/internal/validate"
)

var verifyRegenerate bool

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <report.json>",
	Short: "Check a JSON report for tree consistency",
	Long: `Verify checks referential integrity, generation order, id uniqueness
and partner/child counts of a report written by 'mftree generate --json'.

With --regenerate the tree is generated again from the embedded
configuration and compared record by record.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolVar(&verifyRegenerate, "regenerate", false, "regenerate from the embedded config and compare")
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("decode report: %w", err)
	}

	out := cmd.OutOrStdout()
	violations := validate.NewValidator(report.MaxGeneration).Validate(report.Records)
	for _, v := range violations {
		fmt.Fprintf(out, "✗ [%s] record %d: %s\n", v.Type, v.Index, v.Description)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%w: %d violation(s)", validate.ErrInvalidTree, len(violations))
	}

	if verifyRegenerate {
		regenerated := genealogy.Generate(report.Config.Genealogy(), report.MaxGeneration)
		if idx := firstDifference(regenerated, report.Records); idx >= 0 {
			return fmt.Errorf("report differs from regenerated tree at record %d", idx)
		}
	}

	fmt.Fprintf(out, "✓ %s: %d records consistent\n", report.Subject(), len(report.Records))
	return nil
}

// firstDifference returns the first index where a and b differ, or -1.
func firstDifference(a, b []genealogy.FamilyRelationship) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if !sameRecord(a[i], b[i]) {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

func sameRecord(a, b genealogy.FamilyRelationship) bool {
	switch x := a.(type) {
	case genealogy.Original:
		y, ok := b.(genealogy.Original)
		return ok && x == y
	case genealogy.Partner:
		y, ok := b.(genealogy.Partner)
		return ok && x == y
	case genealogy.Child:
		y, ok := b.(genealogy.Child)
		if !ok || x.Generation != y.Generation || x.ParentID != y.ParentID || x.Info != y.Info {
			return false
		}
		if x.OtherParentID == nil || y.OtherParentID == nil {
			return x.OtherParentID == nil && y.OtherParentID == nil
		}
		return *x.OtherParentID == *y.OtherParentID
	}
	return false
}
