package model

import (
	"github.com/ppiankov/mftree/internal/census"
	"github.com/ppiankov/mftree/internal/genealogy"
)

// Report is the result of one generation run.
type Report struct {
	Config        TreeConfig           `json:"config" yaml:"config"`
	ConfigHash    string               `json:"config_hash" yaml:"config_hash"` // hex xxhash of the genealogy config, seeds the global stream
	MaxGeneration genealogy.Generation `json:"max_generation" yaml:"max_generation"`
	Records       genealogy.Records    `json:"records" yaml:"records"`
	Census        census.Census        `json:"census" yaml:"census"`
}

// Subject returns a short human label for the report.
func (r *Report) Subject() string {
	return r.Config.Seed + "/" + r.Config.Original.ID
}
