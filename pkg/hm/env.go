package hm

// Env represents a type environment: a binding of names to type schemes,
// visible to Algorithm W while inferring one expression (spec §4.E).
type Env interface {
	SchemeOf(name string) (*Scheme, bool)
	Clone() Env
	Add(name string, scheme *Scheme) Env
	Remove(name string) Env
	FreeTypeVar() TypeVarSet
	Apply(subs Subs) Substitutable
}

// SimpleEnv is a simple implementation of Env backed by a map.
type SimpleEnv struct {
	schemes map[string]*Scheme
}

// NewSimpleEnv creates a new, empty SimpleEnv.
func NewSimpleEnv() *SimpleEnv {
	return &SimpleEnv{schemes: make(map[string]*Scheme)}
}

func (env *SimpleEnv) SchemeOf(name string) (*Scheme, bool) {
	scheme, exists := env.schemes[name]
	return scheme, exists
}

func (env *SimpleEnv) Clone() Env {
	newEnv := NewSimpleEnv()
	for name, scheme := range env.schemes {
		newEnv.schemes[name] = scheme.Clone()
	}
	return newEnv
}

// Add returns env with name bound to scheme. It mutates and returns the
// receiver, mirroring the teacher's builder-style Env.Add.
func (env *SimpleEnv) Add(name string, scheme *Scheme) Env {
	env.schemes[name] = scheme
	return env
}

func (env *SimpleEnv) Remove(name string) Env {
	newEnv := NewSimpleEnv()
	for n, scheme := range env.schemes {
		if n != name {
			newEnv.schemes[n] = scheme
		}
	}
	return newEnv
}

func (env *SimpleEnv) FreeTypeVar() TypeVarSet {
	ftvs := NewTypeVarSet()
	for _, scheme := range env.schemes {
		ftvs = ftvs.Union(scheme.FreeTypeVar())
	}
	return ftvs
}

func (env *SimpleEnv) Apply(subs Subs) Substitutable {
	newEnv := NewSimpleEnv()
	for name, scheme := range env.schemes {
		newEnv.schemes[name] = scheme.Apply(subs).(*Scheme)
	}
	return newEnv
}
