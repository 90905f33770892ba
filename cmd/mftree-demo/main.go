// Demonstration program: generates the built-in family tree up to
// generation 5 and prints every record.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/mftree/internal/genealogy"
	"github.com/ppiankov/mftree/internal/pipeline"
)

func main() {
	config := genealogy.Config{
		Seed: "puripuri2100",
		Original: genealogy.PersonInfo{
			ID:               "original",
			NumberOfChildren: 1,
			NumberOfPartners: 1,
		},
		// The remaining fields are carried but not used by generation yet.
		AverageLife:                78,
		InfantDeathRate:            genealogy.NewProbability(5, 1000),
		TotalFertilityRate:         genealogy.NewProbability(105, 100),
		ProbabilityOfHavingPartner: genealogy.NewProbability(70, 100),
	}
	max := genealogy.GenerationFromUint64(5)

	fmt.Println("=== Family tree ===")
	fmt.Println(strings.Repeat("-", 60))

	records := genealogy.Generate(config, max)
	if err := pipeline.WriteText(os.Stdout, records); err != nil {
		fmt.Fprintf(os.Stderr, "write records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%d records, max generation %d\n", len(records), max)
}
