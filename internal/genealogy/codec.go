package genealogy

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record kinds used by the JSON encoding.
const (
	KindOriginal = "original"
	KindChild    = "child"
	KindPartner  = "partner"
)

// ErrUnknownKind is returned when decoding a record with an unrecognized kind.
var ErrUnknownKind = errors.New("genealogy: unknown record kind")

// wireRecord is the flat JSON shape of a FamilyRelationship.
type wireRecord struct {
	Kind          string       `json:"kind" yaml:"kind"`
	Generation    Generation   `json:"generation,omitempty" yaml:"generation,omitempty"`
	ParentID      PersonID     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	OtherParentID *PersonID    `json:"other_parent_id,omitempty" yaml:"other_parent_id,omitempty"`
	PersonID      PersonID     `json:"person_id,omitempty" yaml:"person_id,omitempty"`
	Info          *PersonInfo  `json:"info,omitempty" yaml:"info,omitempty"`
	Partner       *PartnerInfo `json:"partner,omitempty" yaml:"partner,omitempty"`
}

// Kind returns the wire name of r's variant.
func Kind(r FamilyRelationship) string {
	switch r.(type) {
	case Original:
		return KindOriginal
	case Child:
		return KindChild
	case Partner:
		return KindPartner
	}
	return ""
}

func toWire(r FamilyRelationship) (wireRecord, error) {
	switch rel := r.(type) {
	case Original:
		info := rel.Info
		return wireRecord{Kind: KindOriginal, Info: &info}, nil
	case Child:
		info := rel.Info
		return wireRecord{
			Kind:          KindChild,
			Generation:    rel.Generation,
			ParentID:      rel.ParentID,
			OtherParentID: rel.OtherParentID,
			Info:          &info,
		}, nil
	case Partner:
		partner := rel.Partner
		return wireRecord{Kind: KindPartner, PersonID: rel.PersonID, Partner: &partner}, nil
	}
	return wireRecord{}, fmt.Errorf("encode %T: %w", r, ErrUnknownKind)
}

func fromWire(w wireRecord) (FamilyRelationship, error) {
	switch w.Kind {
	case KindOriginal:
		if w.Info == nil {
			return nil, fmt.Errorf("original record without info")
		}
		return Original{Info: *w.Info}, nil
	case KindChild:
		if w.Info == nil {
			return nil, fmt.Errorf("child record without info")
		}
		return Child{
			Generation:    w.Generation,
			ParentID:      w.ParentID,
			OtherParentID: w.OtherParentID,
			Info:          *w.Info,
		}, nil
	case KindPartner:
		if w.Partner == nil {
			return nil, fmt.Errorf("partner record without partner")
		}
		return Partner{PersonID: w.PersonID, Partner: *w.Partner}, nil
	}
	return nil, fmt.Errorf("decode %q: %w", w.Kind, ErrUnknownKind)
}

// Records is a record list with a tagged JSON encoding.
type Records []FamilyRelationship

// MarshalJSON implements json.Marshaler.
func (rs Records) MarshalJSON() ([]byte, error) {
	wire, err := rs.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func (rs Records) wire() ([]wireRecord, error) {
	wire := make([]wireRecord, 0, len(rs))
	for i, r := range rs {
		w, err := toWire(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		wire = append(wire, w)
	}
	return wire, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (rs *Records) UnmarshalJSON(data []byte) error {
	var wire []wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(Records, 0, len(wire))
	for i, w := range wire {
		r, err := fromWire(w)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	*rs = out
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same shape as the JSON form.
func (rs Records) MarshalYAML() (any, error) {
	return rs.wire()
}

// MarshalRecords encodes records as a JSON array.
func MarshalRecords(records []FamilyRelationship) ([]byte, error) {
	return json.Marshal(Records(records))
}

// UnmarshalRecords decodes a JSON array produced by MarshalRecords.
func UnmarshalRecords(data []byte) ([]FamilyRelationship, error) {
	var rs Records
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}
