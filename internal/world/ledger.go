package world

import "github.com/emberhollow/settlement/internal/core/ecs"

// Skill names a learnable trade skill.
type Skill string

const (
	SkillFarming    Skill = "farming"
	SkillMining     Skill = "mining"
	SkillGathering  Skill = "gathering"
	SkillBuilding   Skill = "building"
	SkillCooking    Skill = "cooking"
	SkillTeaching   Skill = "teaching"
	SkillHospitable Skill = "hospitable"
)

// SkillLedger records per-citizen skill experience.
type SkillLedger struct {
	xp map[ecs.EntityID]map[Skill]float64
}

func NewSkillLedger() *SkillLedger {
	return &SkillLedger{xp: make(map[ecs.EntityID]map[Skill]float64, 64)}
}

// Grant adds experience for a skill.
func (l *SkillLedger) Grant(id ecs.EntityID, skill Skill, amount float64) {
	if amount <= 0 {
		return
	}
	m := l.xp[id]
	if m == nil {
		m = make(map[Skill]float64, 4)
		l.xp[id] = m
	}
	m[skill] += amount
}

// Experience returns the accumulated experience, 0 for unknown citizens.
func (l *SkillLedger) Experience(id ecs.EntityID, skill Skill) float64 {
	return l.xp[id][skill]
}

// Forget drops every record for a destroyed citizen.
func (l *SkillLedger) Forget(id ecs.EntityID) {
	delete(l.xp, id)
}

// Export copies the full ledger for snapshots.
func (l *SkillLedger) Export() map[ecs.EntityID]map[Skill]float64 {
	out := make(map[ecs.EntityID]map[Skill]float64, len(l.xp))
	for id, m := range l.xp {
		c := make(map[Skill]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		out[id] = c
	}
	return out
}

// Import replaces the ledger wholesale (load path).
func (l *SkillLedger) Import(xp map[ecs.EntityID]map[Skill]float64) {
	l.xp = make(map[ecs.EntityID]map[Skill]float64, len(xp))
	for id, m := range xp {
		c := make(map[Skill]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		l.xp[id] = c
	}
}

// relKey orders the pair so (a,b) and (b,a) share one counter.
type relKey struct {
	lo, hi ecs.EntityID
}

func pairKey(a, b ecs.EntityID) relKey {
	if a > b {
		a, b = b, a
	}
	return relKey{lo: a, hi: b}
}

// RelationshipLedger counts pairwise interactions between citizens.
type RelationshipLedger struct {
	counts map[relKey]int
}

func NewRelationshipLedger() *RelationshipLedger {
	return &RelationshipLedger{counts: make(map[relKey]int, 128)}
}

// Increment bumps the pair's counter by one.
func (l *RelationshipLedger) Increment(a, b ecs.EntityID) {
	if a == b || a.IsZero() || b.IsZero() {
		return
	}
	l.counts[pairKey(a, b)]++
}

// Count returns the pair's interaction count.
func (l *RelationshipLedger) Count(a, b ecs.EntityID) int {
	return l.counts[pairKey(a, b)]
}

// Forget drops every pair involving a destroyed citizen.
func (l *RelationshipLedger) Forget(id ecs.EntityID) {
	for k := range l.counts {
		if k.lo == id || k.hi == id {
			delete(l.counts, k)
		}
	}
}

// RelationEntry is one flattened pair counter; the map's struct keys do not
// survive JSON, so snapshots carry an entry list instead.
type RelationEntry struct {
	A     ecs.EntityID `json:"a"`
	B     ecs.EntityID `json:"b"`
	Count int          `json:"count"`
}

// Export flattens the ledger for snapshots.
func (l *RelationshipLedger) Export() []RelationEntry {
	out := make([]RelationEntry, 0, len(l.counts))
	for k, n := range l.counts {
		out = append(out, RelationEntry{A: k.lo, B: k.hi, Count: n})
	}
	return out
}

// Import replaces the ledger wholesale (load path).
func (l *RelationshipLedger) Import(entries []RelationEntry) {
	l.counts = make(map[relKey]int, len(entries))
	for _, e := range entries {
		if e.Count > 0 {
			l.counts[pairKey(e.A, e.B)] = e.Count
		}
	}
}
