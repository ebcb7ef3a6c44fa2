package domain

// Principal is the identity decoded from a verified token. It is scoped to a
// single request.
type Principal struct {
	SubjectID string
	IsAdmin   bool
}
