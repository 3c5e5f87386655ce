package lineage

// target is the real table an alias stands for. A derived table has an
// empty table name; columns resolved through it stay unqualified.
type target struct {
	database string
	table    string
}

// scope holds the aliases and CTE names visible to one statement. A
// bare table name in FROM aliases to itself. Child scopes inherit CTE
// names only; aliases never cross statement boundaries.
type scope struct {
	aliases map[string]target
	ctes    map[string]struct{}
}

func newScope() *scope {
	return &scope{
		aliases: make(map[string]target),
		ctes:    make(map[string]struct{}),
	}
}

// child creates the scope for a nested statement: CTE names carry over,
// aliases do not.
func (sc *scope) child() *scope {
	c := newScope()
	for name := range sc.ctes {
		c.ctes[name] = struct{}{}
	}
	return c
}

func (sc *scope) declare(alias string, t target) {
	sc.aliases[alias] = t
}

func (sc *scope) addCTE(name string) {
	sc.ctes[name] = struct{}{}
}

func (sc *scope) isCTE(name string) bool {
	_, ok := sc.ctes[name]
	return ok
}

func (sc *scope) resolve(name string) (target, bool) {
	t, ok := sc.aliases[name]
	return t, ok
}
