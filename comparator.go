package catalog

// A Comparator is an unchecked binary predicate over two values of the same ColumnType.
// Passing values of any other Go type panics.
type Comparator func(lhs interface{}, rhs interface{}) bool

// A ComparatorProvider produces comparators for a ColumnType. LessThan must define a strict
// total order over the values of the type, and Equal must be consistent with it.
type ComparatorProvider interface {
	LessThan(colType ColumnType) (Comparator, error) // LessThan returns a comparator which is true iff lhs < rhs
	Equal(colType ColumnType) (Comparator, error)    // Equal returns a comparator which is true iff lhs == rhs
}
