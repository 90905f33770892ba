package census

import (
	"sort"

	"github.com/ppiankov/mftree/internal/genealogy"
)

// Layer holds the counts of one generation.
type Layer struct {
	Generation         genealogy.Generation `json:"generation" yaml:"generation"`
	People             int                  `json:"people" yaml:"people"`
	Partners           int                  `json:"partners" yaml:"partners"` // partner records created by people of this layer
	SingleParentBirths int                  `json:"single_parent_births" yaml:"single_parent_births"`
	TwoParentBirths    int                  `json:"two_parent_births" yaml:"two_parent_births"`
}

// Census summarizes a generated tree.
type Census struct {
	Records            int                  `json:"records" yaml:"records"`
	People             int                  `json:"people" yaml:"people"`
	Partners           int                  `json:"partners" yaml:"partners"`
	Children           int                  `json:"children" yaml:"children"`
	SingleParentBirths int                  `json:"single_parent_births" yaml:"single_parent_births"`
	DeepestGeneration  genealogy.Generation `json:"deepest_generation" yaml:"deepest_generation"`
	Layers             []Layer              `json:"layers" yaml:"layers"`
}

// Counter computes census figures.
type Counter struct{}

// NewCounter creates a new counter
func NewCounter() *Counter {
	return &Counter{}
}

// Count tallies records. Births are attributed to the layer of the child,
// partners to the layer of the person who acquired them.
func (c *Counter) Count(records []genealogy.FamilyRelationship) Census {
	layers := make(map[genealogy.Generation]*Layer)
	layer := func(g genealogy.Generation) *Layer {
		l, ok := layers[g]
		if !ok {
			l = &Layer{Generation: g}
			layers[g] = l
		}
		return l
	}

	generationOf := make(map[genealogy.PersonID]genealogy.Generation)
	out := Census{Records: len(records)}

	for _, r := range records {
		if info, g, ok := genealogy.PersonOf(r); ok {
			generationOf[info.ID] = g
			layer(g).People++
			out.People++
		}

		switch rel := r.(type) {
		case genealogy.Child:
			l := layer(rel.Generation)
			if rel.OtherParentID == nil {
				l.SingleParentBirths++
				out.SingleParentBirths++
			} else {
				l.TwoParentBirths++
			}
			out.Children++
		case genealogy.Partner:
			if g, ok := generationOf[rel.PersonID]; ok {
				layer(g).Partners++
			}
			out.Partners++
		}
	}

	for g, l := range layers {
		if out.DeepestGeneration.Less(g) {
			out.DeepestGeneration = g
		}
		out.Layers = append(out.Layers, *l)
	}
	sort.Slice(out.Layers, func(i, j int) bool {
		return out.Layers[i].Generation.Less(out.Layers[j].Generation)
	})

	return out
}
