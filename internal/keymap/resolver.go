package keymap

// Resolver maps keys to actions screen by screen. A key bound on a screen
// shadows the same key in the global context.
type Resolver struct {
	actions map[string]map[string]Action   // context -> key -> action
	keys    map[string]map[Action][]string // context -> action -> keys, in binding order
}

// NewResolver indexes bindings by context.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]map[string]Action),
		keys:    make(map[string]map[Action][]string),
	}
	for _, b := range bindings {
		if r.actions[b.Context] == nil {
			r.actions[b.Context] = make(map[string]Action)
			r.keys[b.Context] = make(map[Action][]string)
		}
		for _, key := range b.Keys {
			if _, taken := r.actions[b.Context][key]; taken {
				continue
			}
			r.actions[b.Context][key] = b.Action
			r.keys[b.Context][b.Action] = append(r.keys[b.Context][b.Action], key)
		}
	}
	return r
}

// Default resolves the bindings in All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action key triggers on screen ctx, or "" if none.
func (r *Resolver) Resolve(ctx, key string) Action {
	if a, ok := r.actions[ctx][key]; ok {
		return a
	}
	return r.actions[ContextGlobal][key]
}

// Quits reports whether key leaves the application from any screen.
func (r *Resolver) Quits(key string) bool {
	return r.actions[ContextGlobal][key] == ActionQuit
}

// KeysFor returns the keys that trigger action on screen ctx. Keys shadowed
// by a screen binding are left out of the global ones.
func (r *Resolver) KeysFor(ctx string, action Action) []string {
	if keys := r.keys[ctx][action]; len(keys) > 0 {
		return keys
	}
	var out []string
	for _, key := range r.keys[ContextGlobal][action] {
		if _, shadowed := r.actions[ctx][key]; !shadowed {
			out = append(out, key)
		}
	}
	return out
}
