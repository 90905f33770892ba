package validate

import (
	"errors"
	"fmt"

	"github.com/ppiankov/mftree/internal/genealogy"
)

// ErrInvalidTree is returned when a record list breaks a tree invariant.
var ErrInvalidTree = errors.New("validate: invalid tree")

// ViolationType classifies a broken invariant.
type ViolationType string

const (
	ViolationMissingOriginal ViolationType = "missing_original"
	ViolationExtraOriginal   ViolationType = "extra_original"
	ViolationUnknownPerson   ViolationType = "unknown_person"
	ViolationUnknownParent   ViolationType = "unknown_parent"
	ViolationUnknownPartner  ViolationType = "unknown_other_parent"
	ViolationGeneration      ViolationType = "generation"
	ViolationDuplicateID     ViolationType = "duplicate_id"
	ViolationPartnerCount    ViolationType = "partner_count"
	ViolationChildCount      ViolationType = "child_count"
)

// Violation describes one broken invariant.
type Violation struct {
	Index       int           `json:"index"` // record index, -1 when not tied to one record
	Type        ViolationType `json:"type"`
	PersonID    string        `json:"person_id,omitempty"`
	Description string        `json:"description"`
}

// Validator checks generated trees.
type Validator struct {
	// MaxGeneration enables cardinality checks: every person below it must
	// have produced exactly their fixed number of partners and children.
	// Zero disables them.
	MaxGeneration genealogy.Generation
}

// NewValidator creates a validator. max may be zero to skip cardinality.
func NewValidator(max genealogy.Generation) *Validator {
	return &Validator{MaxGeneration: max}
}

type person struct {
	info       genealogy.PersonInfo
	generation genealogy.Generation
}

// Validate walks records in order and reports every violation found.
func (v *Validator) Validate(records []genealogy.FamilyRelationship) []Violation {
	var violations []Violation
	add := func(idx int, typ ViolationType, id genealogy.PersonID, format string, args ...any) {
		violations = append(violations, Violation{
			Index:       idx,
			Type:        typ,
			PersonID:    string(id),
			Description: fmt.Sprintf(format, args...),
		})
	}

	if len(records) == 0 {
		add(-1, ViolationMissingOriginal, "", "tree is empty")
		return violations
	}
	if _, ok := records[0].(genealogy.Original); !ok {
		add(0, ViolationMissingOriginal, "", "first record is %s, want original", genealogy.Kind(records[0]))
	}

	people := make(map[genealogy.PersonID]person)
	order := make([]genealogy.PersonID, 0, len(records))
	partners := make(map[genealogy.PersonID]int)
	children := make(map[genealogy.PersonID]int)
	// partner ids visible to each person at the time of a birth
	partnerIDs := make(map[genealogy.PersonID]map[genealogy.PersonID]bool)

	introduce := func(idx int, info genealogy.PersonInfo, g genealogy.Generation) {
		if _, dup := people[info.ID]; dup {
			add(idx, ViolationDuplicateID, info.ID, "person %s introduced twice", info.ID)
			return
		}
		people[info.ID] = person{info: info, generation: g}
		order = append(order, info.ID)
	}

	for i, r := range records {
		switch rel := r.(type) {
		case genealogy.Original:
			if i != 0 {
				add(i, ViolationExtraOriginal, rel.Info.ID, "original record at position %d", i)
				continue
			}

		case genealogy.Partner:
			if _, ok := people[rel.PersonID]; !ok {
				add(i, ViolationUnknownPerson, rel.PersonID, "partner record for unknown person %s", rel.PersonID)
				continue
			}
			partners[rel.PersonID]++
			if partnerIDs[rel.PersonID] == nil {
				partnerIDs[rel.PersonID] = make(map[genealogy.PersonID]bool)
			}
			partnerIDs[rel.PersonID][rel.Partner.ID] = true

		case genealogy.Child:
			parent, ok := people[rel.ParentID]
			if !ok {
				add(i, ViolationUnknownParent, rel.ParentID, "child %s has unknown parent %s", rel.Info.ID, rel.ParentID)
			} else {
				children[rel.ParentID]++
				if want := parent.generation.Increment(); rel.Generation != want {
					add(i, ViolationGeneration, rel.Info.ID, "child %s in generation %d, want %d", rel.Info.ID, rel.Generation, want)
				}
			}
			if rel.OtherParentID != nil && !partnerIDs[rel.ParentID][*rel.OtherParentID] {
				add(i, ViolationUnknownPartner, *rel.OtherParentID, "child %s has other parent %s not partnered with %s", rel.Info.ID, *rel.OtherParentID, rel.ParentID)
			}
		}

		if info, g, ok := genealogy.PersonOf(r); ok {
			introduce(i, info, g)
		}
	}

	if v.MaxGeneration > 0 {
		for _, id := range order {
			p := people[id]
			if !p.generation.Less(v.MaxGeneration) {
				continue
			}
			if got, want := partners[id], int(p.info.NumberOfPartners); got != want {
				add(-1, ViolationPartnerCount, id, "person %s has %d partner records, want %d", id, got, want)
			}
			if got, want := children[id], int(p.info.NumberOfChildren); got != want {
				add(-1, ViolationChildCount, id, "person %s has %d child records, want %d", id, got, want)
			}
		}
	}

	return violations
}

// Check runs Validate and folds the result into an error wrapping
// ErrInvalidTree, or nil when the tree is consistent.
func (v *Validator) Check(records []genealogy.FamilyRelationship) error {
	violations := v.Validate(records)
	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d violation(s), first: %s", ErrInvalidTree, len(violations), violations[0].Description)
}
