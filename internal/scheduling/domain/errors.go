package domain

import "errors"

var (
	// ErrRoleNotFound is returned when the requested role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrPersonNotFound is returned when the requested person does not exist.
	ErrPersonNotFound = errors.New("person not found")
	// ErrAgendaNotFound is returned when the requested agenda does not exist.
	ErrAgendaNotFound = errors.New("agenda not found")
	// ErrRuleNotFound is returned when the requested hour rule does not exist.
	ErrRuleNotFound = errors.New("hour rule not found")
	// ErrNoScheduleData is returned when no availability or business hours
	// overlap the generation window.
	ErrNoScheduleData = errors.New("no availability or business service hours available")
	// ErrInvalidStrategy is returned for strategy names outside the three
	// supported ones.
	ErrInvalidStrategy = errors.New("invalid optimization strategy")
	// ErrDuplicateEmail is returned when a person's email is already taken.
	ErrDuplicateEmail = errors.New("email already in use")
)
