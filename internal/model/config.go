package model

import (
	"time"

	"github.com/ppiankov/mftree/internal/genealogy"
)

// Config is the complete mftree configuration as read from file, env and flags.
type Config struct {
	Tree        TreeConfig        `json:"tree" yaml:"tree" mapstructure:"tree"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// TreeConfig mirrors genealogy.Config plus the generation depth.
type TreeConfig struct {
	Seed                       string            `json:"seed" yaml:"seed" mapstructure:"seed"`
	Original                   PersonConfig      `json:"original" yaml:"original" mapstructure:"original"`
	AverageLife                int8              `json:"average_life" yaml:"average_life" mapstructure:"average_life"`
	InfantDeathRate            ProbabilityConfig `json:"infant_death_rate" yaml:"infant_death_rate" mapstructure:"infant_death_rate"`
	TotalFertilityRate         ProbabilityConfig `json:"total_fertility_rate" yaml:"total_fertility_rate" mapstructure:"total_fertility_rate"`
	ProbabilityOfHavingPartner ProbabilityConfig `json:"probability_of_having_partner" yaml:"probability_of_having_partner" mapstructure:"probability_of_having_partner"`
	MaxGeneration              uint64            `json:"max_generation" yaml:"max_generation" mapstructure:"max_generation"`
}

// PersonConfig describes the originating person.
type PersonConfig struct {
	ID               string `json:"id" yaml:"id" mapstructure:"id"`
	NumberOfChildren uint8  `json:"number_of_children" yaml:"number_of_children" mapstructure:"number_of_children"`
	NumberOfPartners uint8  `json:"number_of_partners" yaml:"number_of_partners" mapstructure:"number_of_partners"`
}

// ProbabilityConfig is a value/base pair, see genealogy.Probability.
type ProbabilityConfig struct {
	Value int64 `json:"value" yaml:"value" mapstructure:"value"`
	Base  int64 `json:"base" yaml:"base" mapstructure:"base"`
}

// CacheConfig controls caching of generated reports.
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `json:"dir" yaml:"dir" mapstructure:"dir"` // empty keeps the cache in memory only
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer" mapstructure:"include_footer"`
}

// ConcurrencyConfig controls batch runs.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the demonstration configuration.
func DefaultConfig() *Config {
	return &Config{
		Tree: TreeConfig{
			Seed: "puripuri2100",
			Original: PersonConfig{
				ID:               "original",
				NumberOfChildren: 1,
				NumberOfPartners: 1,
			},
			AverageLife:                78,
			InfantDeathRate:            ProbabilityConfig{Value: 5, Base: 1000},
			TotalFertilityRate:         ProbabilityConfig{Value: 105, Base: 100},
			ProbabilityOfHavingPartner: ProbabilityConfig{Value: 70, Base: 100},
			MaxGeneration:              5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}

// Genealogy converts the tree section into the generator input.
func (t TreeConfig) Genealogy() genealogy.Config {
	return genealogy.Config{
		Seed: t.Seed,
		Original: genealogy.PersonInfo{
			ID:               genealogy.PersonID(t.Original.ID),
			NumberOfChildren: t.Original.NumberOfChildren,
			NumberOfPartners: t.Original.NumberOfPartners,
		},
		AverageLife:                t.AverageLife,
		InfantDeathRate:            t.InfantDeathRate.Probability(),
		TotalFertilityRate:         t.TotalFertilityRate.Probability(),
		ProbabilityOfHavingPartner: t.ProbabilityOfHavingPartner.Probability(),
	}
}

// Max returns the generation depth.
func (t TreeConfig) Max() genealogy.Generation {
	return genealogy.GenerationFromUint64(t.MaxGeneration)
}

// Probability converts the pair without validation.
func (p ProbabilityConfig) Probability() genealogy.Probability {
	return genealogy.NewProbability(p.Value, p.Base)
}
