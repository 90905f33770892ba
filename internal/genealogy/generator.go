package genealogy

import (
	"log/slog"
	"strconv"
	"strings"
)

const (
	// singleParentChance is the probability that a child is recorded
	// without an other parent, even when partners exist.
	singleParentChance float32 = 0.1

	// Counts assigned to every generated person.
	childChildren = 1
	childPartners = 1
)

// Generator produces family trees from a Config.
type Generator struct {
	logger *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for per-layer progress. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator. Without options it logs nothing.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate is shorthand for NewGenerator().Generate(cfg, max).
func Generate(cfg Config, max Generation) []FamilyRelationship {
	return NewGenerator().Generate(cfg, max)
}

// Generate builds the tree for cfg up to and including layer max.
//
// The list starts with Original(cfg.Original). While the current layer is
// below max, every person of that layer is expanded into their partners and
// children, stamped with the next layer. The layer equal to max is kept but
// never expanded, so max <= 1 yields only the Original record.
func (gen *Generator) Generate(cfg Config, max Generation) []FamilyRelationship {
	global := NewStream(HashConfig(cfg))

	records := []FamilyRelationship{Original{Info: cfg.Original}}
	generation := FirstGeneration()

	for generation.Less(max) {
		frontier := selectFrontier(records, generation)
		generation = generation.Increment()

		before := len(records)
		for _, info := range frontier {
			records = append(records, expandPerson(info, generation, global)...)
		}

		gen.logger.Debug("generation expanded",
			"generation", generation.Uint64(),
			"parents", len(frontier),
			"records", len(records)-before,
		)
	}

	return records
}

// selectFrontier collects, in list order, every PersonInfo belonging to g.
func selectFrontier(records []FamilyRelationship, g Generation) []PersonInfo {
	var frontier []PersonInfo
	for _, r := range records {
		if info, ok := frontierInfo(r, g); ok {
			frontier = append(frontier, info)
		}
	}
	return frontier
}

// expandPerson emits info's Partner records followed by their Child records.
// Children are stamped with generation.
func expandPerson(info PersonInfo, generation Generation, global *Stream) []FamilyRelationship {
	infoHash := HashPersonInfo(info)
	own := NewStream(infoHash)
	hashText := strconv.FormatUint(infoHash, 10)

	partners := make([]PartnerInfo, 0, info.NumberOfPartners)
	for range int(info.NumberOfPartners) {
		personDraw := own.Uint32()
		globalDraw := global.Uint8()
		partners = append(partners, PartnerInfo{
			ID: joinID(hashText, "-", formatUint(uint64(personDraw)), "#", formatUint(uint64(globalDraw))),
		})
	}

	out := make([]FamilyRelationship, 0, len(partners)+int(info.NumberOfChildren))
	for _, p := range partners {
		out = append(out, Partner{PersonID: info.ID, Partner: p})
	}

	for range int(info.NumberOfChildren) {
		// The single-parent roll is drawn even when there are no partners.
		var other *PartnerInfo
		if !global.Bernoulli(singleParentChance) && len(partners) > 0 {
			other = &partners[own.Index(len(partners))]
		}

		otherHash := ""
		var otherID *PersonID
		if other != nil {
			otherHash = formatUint(HashPartnerInfo(*other))
			id := other.ID
			otherID = &id
		}

		personDraw := own.Uint32()
		globalDraw := global.Uint8()
		out = append(out, Child{
			Generation:    generation,
			ParentID:      info.ID,
			OtherParentID: otherID,
			Info: PersonInfo{
				ID:               joinID(hashText, "+", otherHash, "+", formatUint(uint64(personDraw)), "#", formatUint(uint64(globalDraw))),
				NumberOfChildren: childChildren,
				NumberOfPartners: childPartners,
			},
		})
	}

	return out
}

func formatUint(v uint64) string { return strconv.FormatUint(v, 10) }

func joinID(parts ...string) PersonID {
	return PersonID(strings.Join(parts, ""))
}
