package genealogy

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoConfig() Config {
	return Config{
		Seed: "puripuri2100",
		Original: PersonInfo{
			ID:               "original",
			NumberOfChildren: 1,
			NumberOfPartners: 1,
		},
		AverageLife:                78,
		InfantDeathRate:            NewProbability(5, 1000),
		TotalFertilityRate:         NewProbability(105, 100),
		ProbabilityOfHavingPartner: NewProbability(70, 100),
	}
}

func wideConfig() Config {
	cfg := demoConfig()
	cfg.Original = PersonInfo{ID: "root", NumberOfChildren: 3, NumberOfPartners: 2}
	return cfg
}

func kinds(records []FamilyRelationship) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = Kind(r)
	}
	return out
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, cfg := range []Config{demoConfig(), wideConfig()} {
		first := Generate(cfg, 6)
		second := Generate(cfg, 6)
		require.Equal(t, first, second)
	}
}

func TestGenerate_SeedChangesOutput(t *testing.T) {
	a := demoConfig()
	b := demoConfig()
	b.Seed = "another seed"

	ra := Generate(a, 4)
	rb := Generate(b, 4)
	require.Len(t, rb, len(ra))

	// Person streams depend only on PersonInfo; the global draws differ.
	assert.NotEqual(t, ra, rb)
}

func TestGenerate_Boundary(t *testing.T) {
	cfg := demoConfig()
	want := []FamilyRelationship{Original{Info: cfg.Original}}

	for _, max := range []Generation{0, 1} {
		assert.Equal(t, want, Generate(cfg, max), "max=%d", max)
	}
}

func TestGenerate_Scenario(t *testing.T) {
	records := Generate(demoConfig(), GenerationFromUint64(3))

	require.Equal(t, []string{KindOriginal, KindPartner, KindChild, KindPartner, KindChild}, kinds(records))

	c2 := records[2].(Child)
	c3 := records[4].(Child)
	assert.Equal(t, Generation(2), c2.Generation)
	assert.Equal(t, PersonID("original"), c2.ParentID)
	assert.Equal(t, Generation(3), c3.Generation)
	assert.Equal(t, c2.Info.ID, c3.ParentID)
	assert.Equal(t, c2.Info.ID, records[3].(Partner).PersonID)
}

func TestGenerate_PinnedDemoOutput(t *testing.T) {
	records := Generate(demoConfig(), GenerationFromUint64(2))
	require.Len(t, records, 3)

	partner, ok := records[1].(Partner)
	require.True(t, ok)
	assert.Equal(t, PersonID("original"), partner.PersonID)
	assert.Equal(t, PartnerInfo{ID: "88489494246361136-3923535346#61"}, partner.Partner)

	child, ok := records[2].(Child)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(child.Info.ID), "88489494246361136+"), child.Info.ID)
}

func TestGenerate_LastLayerIsMax(t *testing.T) {
	records := Generate(wideConfig(), 5)

	var last Generation
	for _, r := range records {
		if c, ok := r.(Child); ok && last.Less(c.Generation) {
			last = c.Generation
		}
	}
	assert.Equal(t, Generation(5), last)
}

func TestGenerate_Cardinality(t *testing.T) {
	cfg := wideConfig()
	max := Generation(4)
	records := Generate(cfg, max)

	partners := map[PersonID]int{}
	children := map[PersonID]int{}
	for _, r := range records {
		switch rel := r.(type) {
		case Partner:
			partners[rel.PersonID]++
		case Child:
			children[rel.ParentID]++
		case Original:
		}
	}

	for _, r := range records {
		info, g, ok := PersonOf(r)
		if !ok {
			continue
		}
		if g.Less(max) {
			assert.Equal(t, int(info.NumberOfPartners), partners[info.ID], "partners of %s", info.ID)
			assert.Equal(t, int(info.NumberOfChildren), children[info.ID], "children of %s", info.ID)
		} else {
			assert.Zero(t, partners[info.ID])
			assert.Zero(t, children[info.ID])
		}
	}

	// 1 + (2+3) + 3*(1+1) + 3*(1+1)
	assert.Len(t, records, 18)
}

func TestGenerate_ReferentialIntegrityAndMonotonicity(t *testing.T) {
	records := Generate(wideConfig(), 5)

	seen := map[PersonID]Generation{}
	partnerIDs := map[PersonID]bool{}
	for i, r := range records {
		switch rel := r.(type) {
		case Original:
			require.Zero(t, i)
			seen[rel.Info.ID] = FirstGeneration()
		case Partner:
			_, ok := seen[rel.PersonID]
			require.True(t, ok, "record %d references unknown person %s", i, rel.PersonID)
			partnerIDs[rel.Partner.ID] = true
		case Child:
			pg, ok := seen[rel.ParentID]
			require.True(t, ok, "record %d references unknown parent %s", i, rel.ParentID)
			assert.Equal(t, pg.Increment(), rel.Generation)
			if rel.OtherParentID != nil {
				assert.True(t, partnerIDs[*rel.OtherParentID], "record %d other parent not introduced", i)
			}
			_, dup := seen[rel.Info.ID]
			require.False(t, dup, "duplicate id %s", rel.Info.ID)
			seen[rel.Info.ID] = rel.Generation
		}
	}
}

func TestGenerate_FixedCounts(t *testing.T) {
	for _, r := range Generate(wideConfig(), 5)[1:] {
		if c, ok := r.(Child); ok {
			assert.Equal(t, uint8(1), c.Info.NumberOfChildren)
			assert.Equal(t, uint8(1), c.Info.NumberOfPartners)
		}
	}
}

var (
	partnerIDPattern = regexp.MustCompile(`^(\d+)-(\d+)#(\d+)$`)
	childIDPattern   = regexp.MustCompile(`^(\d+)\+(\d*)\+(\d+)#(\d+)$`)
)

func TestGenerate_IdentifierShape(t *testing.T) {
	cfg := wideConfig()
	records := Generate(cfg, 4)

	infos := map[PersonID]PersonInfo{cfg.Original.ID: cfg.Original}
	partners := map[PersonID]PartnerInfo{}
	for _, r := range records {
		switch rel := r.(type) {
		case Partner:
			m := partnerIDPattern.FindStringSubmatch(string(rel.Partner.ID))
			require.NotNil(t, m, "partner id %q", rel.Partner.ID)
			assert.Equal(t, strconv.FormatUint(HashPersonInfo(infos[rel.PersonID]), 10), m[1])
			assertByte(t, m[3])
			partners[rel.Partner.ID] = rel.Partner
		case Child:
			m := childIDPattern.FindStringSubmatch(string(rel.Info.ID))
			require.NotNil(t, m, "child id %q", rel.Info.ID)
			assert.Equal(t, strconv.FormatUint(HashPersonInfo(infos[rel.ParentID]), 10), m[1])
			if rel.OtherParentID == nil {
				assert.Empty(t, m[2])
			} else {
				assert.Equal(t, strconv.FormatUint(HashPartnerInfo(partners[*rel.OtherParentID]), 10), m[2])
			}
			assertByte(t, m[4])
			infos[rel.Info.ID] = rel.Info
		case Original:
		}
	}
}

func assertByte(t *testing.T, s string) {
	t.Helper()
	v, err := strconv.ParseUint(s, 10, 64)
	require.NoError(t, err)
	assert.LessOrEqual(t, v, uint64(255))
}

func TestGenerate_PersonStreamDrivesPartnerID(t *testing.T) {
	cfg := demoConfig()
	records := Generate(cfg, 2)

	p := records[1].(Partner)
	own := NewStream(HashPersonInfo(cfg.Original))
	prefix := strconv.FormatUint(HashPersonInfo(cfg.Original), 10) + "-" + strconv.FormatUint(uint64(own.Uint32()), 10) + "#"
	assert.True(t, strings.HasPrefix(string(p.Partner.ID), prefix), "%q should start with %q", p.Partner.ID, prefix)
}

func TestGenerate_NoPartnersMeansSingleParent(t *testing.T) {
	cfg := demoConfig()
	cfg.Original = PersonInfo{ID: "solo", NumberOfChildren: 4, NumberOfPartners: 0}

	records := Generate(cfg, 2)
	require.Len(t, records, 5)
	for _, r := range records[1:] {
		c, ok := r.(Child)
		require.True(t, ok)
		assert.Nil(t, c.OtherParentID)
	}
}
