package domain

import "fmt"

// ErrUnknownKind indicates an entity kind with no registered prefix.
type ErrUnknownKind struct {
	Kind EntityKind
}

func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown entity kind %q", string(e.Kind))
}

// ErrColumnMissing indicates a lookup against a column the table does not carry.
type ErrColumnMissing struct {
	Table  string
	Column string
}

func (e ErrColumnMissing) Error() string {
	return fmt.Sprintf("table %s has no column %q", e.Table, e.Column)
}

// ErrRowShape indicates a row wider than the table's column list.
type ErrRowShape struct {
	Table string
	Want  int
	Got   int
}

func (e ErrRowShape) Error() string {
	return fmt.Sprintf("table %s row has %d cells, want at most %d", e.Table, e.Got, e.Want)
}
