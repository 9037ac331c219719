package symtab

import "fmt"

// DuplicateSymbolError reports an InsertFile call while a symbol id is
// already present. Callers remove the owning file before reinsertion;
// hitting this is a programming error, not a recoverable condition.
type DuplicateSymbolError struct {
	ID string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol id: %s", e.ID)
}

// InvalidFileKeyError reports a file key that would break the id grammar.
type InvalidFileKeyError struct {
	FileKey string
}

func (e *InvalidFileKeyError) Error() string {
	return fmt.Sprintf("file key %q must not contain ':'", e.FileKey)
}
