package domain

import "github.com/google/uuid"

// Person is someone who can be assigned shifts. Emails are unique across
// people.
type Person struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Role is a business function people work in and agendas are generated
// for.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
}
