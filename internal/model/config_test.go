package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/mftree/internal/genealogy"
)

func TestDefaultConfig_Genealogy(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Tree.Genealogy()

	assert.Equal(t, "puripuri2100", g.Seed)
	assert.Equal(t, genealogy.PersonInfo{ID: "original", NumberOfChildren: 1, NumberOfPartners: 1}, g.Original)
	assert.Equal(t, int8(78), g.AverageLife)
	assert.Equal(t, genealogy.NewProbability(5, 1000), g.InfantDeathRate)
	assert.Equal(t, genealogy.NewProbability(105, 100), g.TotalFertilityRate)
	assert.Equal(t, genealogy.NewProbability(70, 100), g.ProbabilityOfHavingPartner)
	assert.Equal(t, genealogy.Generation(5), cfg.Tree.Max())
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()

	data, err := yaml.Marshal(cfg)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "seed: puripuri2100")

	var back Config
	assert.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
}
