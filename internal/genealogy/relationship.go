package genealogy

// FamilyRelationship is one fact recorded in a tree. The set of variants is
// closed: Original, Child and Partner.
type FamilyRelationship interface {
	isFamilyRelationship()
}

// Original is the originating person. It is always the first record and
// belongs to generation 1.
type Original struct {
	Info PersonInfo
}

// Child records a birth into Generation. OtherParentID is nil for
// single-parent births.
type Child struct {
	Generation    Generation
	ParentID      PersonID
	OtherParentID *PersonID
	Info          PersonInfo
}

// Partner records that PersonID acquired the partner described by Partner.
type Partner struct {
	PersonID PersonID
	Partner  PartnerInfo
}

func (Original) isFamilyRelationship() {}
func (Child) isFamilyRelationship()    {}
func (Partner) isFamilyRelationship()  {}

// frontierInfo returns the PersonInfo a record contributes to the layer g.
func frontierInfo(r FamilyRelationship, g Generation) (PersonInfo, bool) {
	switch rel := r.(type) {
	case Original:
		if g == FirstGeneration() {
			return rel.Info, true
		}
	case Child:
		if rel.Generation == g {
			return rel.Info, true
		}
	case Partner:
	}
	return PersonInfo{}, false
}

// PersonOf returns the PersonInfo introduced by r, if any, together with the
// generation it belongs to. Partner records introduce no PersonInfo.
func PersonOf(r FamilyRelationship) (PersonInfo, Generation, bool) {
	switch rel := r.(type) {
	case Original:
		return rel.Info, FirstGeneration(), true
	case Child:
		return rel.Info, rel.Generation, true
	case Partner:
		return PersonInfo{}, 0, false
	}
	return PersonInfo{}, 0, false
}
