package world

import "github.com/emberhollow/settlement/internal/data"

// Stockpile is the settlement's shared resource ledger. Single writer by
// construction, so no locking.
type Stockpile struct {
	stock    map[data.ResourceKind]float64
	capacity float64 // total units across all kinds; 0 = unlimited
}

func NewStockpile(capacity float64) *Stockpile {
	return &Stockpile{
		stock:    make(map[data.ResourceKind]float64, 16),
		capacity: capacity,
	}
}

func (s *Stockpile) SetCapacity(capacity float64) {
	s.capacity = capacity
}

// Stock returns the current amount of one kind.
func (s *Stockpile) Stock(kind data.ResourceKind) float64 {
	return s.stock[kind]
}

// Total returns the summed stock across every kind.
func (s *Stockpile) Total() float64 {
	var total float64
	for _, amt := range s.stock {
		total += amt
	}
	return total
}

// Full reports whether the storage capacity is reached.
func (s *Stockpile) Full() bool {
	return s.capacity > 0 && s.Total() >= s.capacity
}

// Add deposits amount, truncating at capacity. Returns the amount actually
// stored.
func (s *Stockpile) Add(kind data.ResourceKind, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if s.capacity > 0 {
		room := s.capacity - s.Total()
		if room <= 0 {
			return 0
		}
		if amount > room {
			amount = room
		}
	}
	s.stock[kind] += amount
	return amount
}

// Remove withdraws amount of kind. Returns false without withdrawing when
// stock is insufficient.
func (s *Stockpile) Remove(kind data.ResourceKind, amount float64) bool {
	if s.stock[kind] < amount {
		return false
	}
	s.stock[kind] -= amount
	if s.stock[kind] <= 0 {
		delete(s.stock, kind)
	}
	return true
}

// Export returns a copy of the stock map for snapshots.
func (s *Stockpile) Export() map[data.ResourceKind]float64 {
	out := make(map[data.ResourceKind]float64, len(s.stock))
	for k, v := range s.stock {
		out[k] = v
	}
	return out
}

// Import replaces the stock wholesale (load path).
func (s *Stockpile) Import(stock map[data.ResourceKind]float64) {
	s.stock = make(map[data.ResourceKind]float64, len(stock))
	for k, v := range stock {
		if v > 0 {
			s.stock[k] = v
		}
	}
}

// PickMeal chooses what a citizen should eat, preferring kinds absent from
// the recent diet, and cooked dishes over raw food. Returns nil when no
// edible stock exists at all.
func (s *Stockpile) PickMeal(recent []data.ResourceKind, foods *data.FoodTable) *data.FoodDef {
	ateRecently := func(kind data.ResourceKind) bool {
		for _, k := range recent {
			if k == kind {
				return true
			}
		}
		return false
	}

	// Candidate passes in preference order: novel cooked, any cooked,
	// novel raw, any raw.
	pick := func(kinds []data.ResourceKind, requireNovel bool) *data.FoodDef {
		for _, kind := range kinds {
			def := foods.Get(kind)
			if def == nil || s.stock[kind] < def.StockCost {
				continue
			}
			if requireNovel {
				novel := !ateRecently(kind)
				for _, ing := range def.Ingredients {
					if ateRecently(ing) {
						novel = false
					}
				}
				if !novel {
					continue
				}
			}
			return def
		}
		return nil
	}

	if def := pick(foods.CookedKinds(), true); def != nil {
		return def
	}
	if def := pick(foods.CookedKinds(), false); def != nil {
		return def
	}
	if def := pick(foods.RawKinds(), true); def != nil {
		return def
	}
	return pick(foods.RawKinds(), false)
}
