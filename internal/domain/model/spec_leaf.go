package model

type baseSpec struct {
	self Specification
}

func (b *baseSpec) setSelf(s Specification) { b.self = s }

func (b *baseSpec) Must(other Specification) Specification {
	return &mustSpec{specs: []Specification{b.self, other}}
}

func (b *baseSpec) IsComposite() bool         { return false }
func (b *baseSpec) Children() []Specification { return nil }

type eqSpec struct {
	baseSpec
	field string
	value any
}

func Eq(field string, value any) Specification {
	s := &eqSpec{field: field, value: value}
	s.setSelf(s)

	return s
}

func (s *eqSpec) Operator() SpecOperator { return SpecOpEq }
func (s *eqSpec) Field() string          { return s.field }
func (s *eqSpec) Value() any             { return s.value }

type gteSpec struct {
	baseSpec
	field string
	value any
}

func Gte(field string, value any) Specification {
	s := &gteSpec{field: field, value: value}
	s.setSelf(s)

	return s
}

func (s *gteSpec) Operator() SpecOperator { return SpecOpGte }
func (s *gteSpec) Field() string          { return s.field }
func (s *gteSpec) Value() any             { return s.value }

type lteSpec struct {
	baseSpec
	field string
	value any
}

func Lte(field string, value any) Specification {
	s := &lteSpec{field: field, value: value}
	s.setSelf(s)

	return s
}

func (s *lteSpec) Operator() SpecOperator { return SpecOpLte }
func (s *lteSpec) Field() string          { return s.field }
func (s *lteSpec) Value() any             { return s.value }

type betweenSpec struct {
	baseSpec
	field string
	start any
	end   any
}

// Between matches values within [start, end] on a single field, so both
// bounds always apply to the same column.
func Between(field string, start, end any) Specification {
	s := &betweenSpec{field: field, start: start, end: end}
	s.setSelf(s)

	return s
}

func (s *betweenSpec) Operator() SpecOperator { return SpecOpBetween }
func (s *betweenSpec) Field() string          { return s.field }
func (s *betweenSpec) Value() any             { return []any{s.start, s.end} }
