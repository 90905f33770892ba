// Package genealogy synthesizes reproducible family trees.
//
// A run starts from a Config (a seed string, the originating person and a
// handful of demographic rates) and a maximum Generation. The output is a
// flat, append-only list of FamilyRelationship records: one Original, then
// Partner and Child records layer by layer. Identical inputs always yield the
// identical list.
//
// Two pseudorandom streams drive a run. The global stream is seeded from the
// structural hash of the whole Config and is consumed in strict processing
// order. Each expanded person additionally gets a private stream seeded from
// the hash of their PersonInfo, so most of a person's draws do not depend on
// where they sit in the frontier.
package genealogy
