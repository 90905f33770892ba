// Package config loads mftree configuration with viper.
//
// Precedence (highest first): flags bound by the caller, MFTREE_* environment
// variables, the config file, then model.DefaultConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ppiankov/mftree/internal/model"
)

// EnvPrefix is the prefix of recognized environment variables, e.g.
// MFTREE_TREE_SEED or MFTREE_TREE_MAX_GENERATION.
const EnvPrefix = "MFTREE"

// Configure prepares v for env lookups and registers every default so that
// env-only keys are visible to Unmarshal.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, model.DefaultConfig())
}

func setDefaults(v *viper.Viper, d *model.Config) {
	v.SetDefault("tree.seed", d.Tree.Seed)
	v.SetDefault("tree.original.id", d.Tree.Original.ID)
	v.SetDefault("tree.original.number_of_children", d.Tree.Original.NumberOfChildren)
	v.SetDefault("tree.original.number_of_partners", d.Tree.Original.NumberOfPartners)
	v.SetDefault("tree.average_life", d.Tree.AverageLife)
	v.SetDefault("tree.infant_death_rate.value", d.Tree.InfantDeathRate.Value)
	v.SetDefault("tree.infant_death_rate.base", d.Tree.InfantDeathRate.Base)
	v.SetDefault("tree.total_fertility_rate.value", d.Tree.TotalFertilityRate.Value)
	v.SetDefault("tree.total_fertility_rate.base", d.Tree.TotalFertilityRate.Base)
	v.SetDefault("tree.probability_of_having_partner.value", d.Tree.ProbabilityOfHavingPartner.Value)
	v.SetDefault("tree.probability_of_having_partner.base", d.Tree.ProbabilityOfHavingPartner.Base)
	v.SetDefault("tree.max_generation", d.Tree.MaxGeneration)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("output.include_footer", d.Output.IncludeFooter)
	v.SetDefault("concurrency.workers", d.Concurrency.Workers)
}

// Load decodes v over the defaults. Values are not range-checked.
func Load(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a single config file with env overrides applied.
func LoadFile(path string) (*model.Config, error) {
	v := viper.New()
	Configure(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Load(v)
}
