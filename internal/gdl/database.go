package gdl

// Database indexes a flat clause list by the relation symbol of each
// clause's head, preserving source order within each symbol's bucket, and
// precomputes the stratification negation-as-failure needs to be sound.
type Database struct {
	bySymbol map[string][]Clause
	symbols  []string
	strata   map[string]int
}

// NewDatabase partitions clauses by head symbol and computes the
// stratification used to order bottom-up evaluation.
func NewDatabase(clauses []Clause) *Database {
	db := &Database{bySymbol: make(map[string][]Clause)}
	for _, c := range clauses {
		sym := c.HeadSymbol()
		if _, ok := db.bySymbol[sym]; !ok {
			db.symbols = append(db.symbols, sym)
		}
		db.bySymbol[sym] = append(db.bySymbol[sym], c)
	}
	db.strata = computeStrata(db)
	return db
}

// Clauses returns the clauses whose head has the given relation symbol, in
// source order. Returns nil if the symbol has no clauses.
func (db *Database) Clauses(symbol string) []Clause {
	return db.bySymbol[symbol]
}

// Symbols returns every relation symbol with at least one clause, in
// first-seen order.
func (db *Database) Symbols() []string {
	out := make([]string, len(db.symbols))
	copy(out, db.symbols)
	return out
}
