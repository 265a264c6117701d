package model

type CriteriaBuilder struct {
	specs []Specification
	page  PageRequest
}

func NewCriteria() *CriteriaBuilder {
	return &CriteriaBuilder{
		specs: make([]Specification, 0),
	}
}

func (b *CriteriaBuilder) Where(field string, value any) *CriteriaBuilder {
	b.specs = append(b.specs, Eq(field, value))

	return b
}

func (b *CriteriaBuilder) WhereGte(field string, value any) *CriteriaBuilder {
	b.specs = append(b.specs, Gte(field, value))

	return b
}

func (b *CriteriaBuilder) WhereLte(field string, value any) *CriteriaBuilder {
	b.specs = append(b.specs, Lte(field, value))

	return b
}

func (b *CriteriaBuilder) WhereBetween(field string, start, end any) *CriteriaBuilder {
	b.specs = append(b.specs, Between(field, start, end))

	return b
}

func (b *CriteriaBuilder) WhereSpec(spec Specification) *CriteriaBuilder {
	b.specs = append(b.specs, spec)

	return b
}

func (b *CriteriaBuilder) Paginate(page PageRequest) *CriteriaBuilder {
	b.page = page

	return b
}

func (b *CriteriaBuilder) Build() Criteria {
	var rootSpec Specification

	if len(b.specs) == 1 {
		rootSpec = b.specs[0]
	} else if len(b.specs) > 1 {
		rootSpec = Must(b.specs...)
	}

	return Criteria{
		spec: rootSpec,
		page: b.page,
	}
}
