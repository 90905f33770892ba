package genealogy

// PersonID is the opaque identifier of a person in a tree.
type PersonID string

// String implements fmt.Stringer.
func (id PersonID) String() string { return string(id) }

// PersonInfo holds the attributes fixed when a person is created. The two
// counts decide how many Partner and Child records the person spawns once
// their generation is expanded.
type PersonInfo struct {
	ID               PersonID `json:"id" yaml:"id"`
	NumberOfChildren uint8    `json:"number_of_children" yaml:"number_of_children"`
	NumberOfPartners uint8    `json:"number_of_partners" yaml:"number_of_partners"`
}

// PartnerInfo describes the partner introduced by a Partner record.
type PartnerInfo struct {
	ID PersonID `json:"id" yaml:"id"`
}
