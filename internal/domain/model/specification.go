package model

type SpecOperator string

const (
	SpecOpEq      SpecOperator = "eq"
	SpecOpGte     SpecOperator = "gte"
	SpecOpLte     SpecOperator = "lte"
	SpecOpBetween SpecOperator = "between"
	SpecOpMust    SpecOperator = "must"
)

// Specification is one node of a predicate tree. Leaves match a single
// field; Must nodes AND their children together.
type Specification interface {
	Must(other Specification) Specification
	IsComposite() bool
	Children() []Specification
	Operator() SpecOperator
	Field() string
	Value() any
}
