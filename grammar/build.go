package grammar

// On maps every symbol in syms to a.
func On(a Action, syms ...Symbol) map[Symbol]Action {
	m := make(map[Symbol]Action, len(syms))
	for _, s := range syms {
		m[s] = a
	}
	return m
}

// Row merges action maps. Later entries win, which lets a row start from a
// follow set and override individual lookaheads.
func Row(parts ...map[Symbol]Action) map[Symbol]Action {
	m := make(map[Symbol]Action)
	for _, p := range parts {
		for s, a := range p {
			m[s] = a
		}
	}
	return m
}

// To maps every non-terminal in syms to state.
func To(state StateID, syms ...Symbol) map[Symbol]StateID {
	m := make(map[Symbol]StateID, len(syms))
	for _, s := range syms {
		m[s] = state
	}
	return m
}

// Gotos merges goto maps.
func Gotos(parts ...map[Symbol]StateID) map[Symbol]StateID {
	m := make(map[Symbol]StateID)
	for _, p := range parts {
		for s, st := range p {
			m[s] = st
		}
	}
	return m
}
