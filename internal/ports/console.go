package ports

// Confirmer asks the user a yes/no question before a destructive
// operation. Implementations block until an answer arrives; tests
// substitute a deterministic stub.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Pager displays text interactively, one screenful at a time.
type Pager interface {
	Page(content string) error
}
