package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Challenge is an additive arithmetic prompt used as proof of human interaction.
type Challenge struct {
	ID       string    `json:"id"`
	OperandA int       `json:"a"`
	OperandB int       `json:"b"`
	Attempts int       `json:"attempts"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Expected returns the only accepted answer. Prompt and Check both derive from it.
func (c Challenge) Expected() int {
	return c.OperandA + c.OperandB
}

// Prompt is the human readable form shown to the user, e.g. "3 + 5".
func (c Challenge) Prompt() string {
	return strconv.Itoa(c.OperandA) + " + " + strconv.Itoa(c.OperandB)
}

// Check evaluates a raw answer. It returns nil on success, ErrParse or ErrMismatch otherwise.
func (c Challenge) Check(raw string) error {
	attempt := ParseAttempt(raw)
	if !attempt.Valid {
		return ErrParse
	}
	if attempt.Overflow || attempt.Value != c.Expected() {
		return ErrMismatch
	}
	return nil
}

// InRange reports whether both operands lie within [0, max].
func (c Challenge) InRange(max int) bool {
	return c.OperandA >= 0 && c.OperandB >= 0 && c.OperandA <= max && c.OperandB <= max
}

// Attempt is a single user-submitted answer to a Challenge.
type Attempt struct {
	Raw   string
	Value int
	Valid bool
	// Overflow marks an integer too large for int; it is valid but never matches.
	Overflow bool
}

// ParseAttempt trims surrounding whitespace and parses a base-10 integer.
func ParseAttempt(raw string) Attempt {
	attempt := Attempt{Raw: raw}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			attempt.Valid = true
			attempt.Overflow = true
		}
		return attempt
	}
	attempt.Value = value
	attempt.Valid = true
	return attempt
}
