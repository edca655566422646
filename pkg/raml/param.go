package raml

// Param describes one query parameter across every call of a method.
type Param struct {
	Name       string
	usecases   []ParamUsecase
	multivalue bool
}

func newParam(name string) *Param {
	return &Param{Name: name}
}

func (p *Param) addUsecase(uc ParamUsecase) {
	p.usecases = append(p.usecases, uc)
	if len(uc.Occurrences) > 1 {
		p.multivalue = true
	}
}

// Usecases returns one usecase per contributing call, in call order.
func (p *Param) Usecases() []ParamUsecase {
	return p.usecases
}

// Multivalue reports whether some single call repeated the parameter.
func (p *Param) Multivalue() bool {
	return p.multivalue
}

// Type returns the parameter's inferred type. The first observed
// classification wins unless any other occurrence disagrees, in which case
// the type is string. ok is false when the parameter was never observed.
func (p *Param) Type() (t ParamType, ok bool) {
	for _, uc := range p.usecases {
		for _, occ := range uc.Occurrences {
			c := Classify(occ.Value)
			if !ok {
				t, ok = c, true
			} else if c != t {
				t = TypeString
			}
			if ok && t == TypeString {
				return t, ok
			}
		}
	}
	return t, ok
}

// Example returns the first observed value.
func (p *Param) Example() (string, bool) {
	for _, uc := range p.usecases {
		if len(uc.Occurrences) > 0 {
			return uc.Occurrences[0].Value, true
		}
	}
	return "", false
}
