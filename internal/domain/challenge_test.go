package domain

import (
	"errors"
	"strconv"
	"testing"
)

func TestChallengeAcceptsSumAcrossRange(t *testing.T) {
	for a := 0; a <= 20; a++ {
		for b := 0; b <= 20; b++ {
			c := Challenge{OperandA: a, OperandB: b}
			if err := c.Check(strconv.Itoa(a + b)); err != nil {
				t.Fatalf("check %d+%d: %v", a, b, err)
			}
		}
	}
}

func TestChallengeRejectsWrongSum(t *testing.T) {
	c := Challenge{OperandA: 3, OperandB: 5}
	for _, x := range []int{-8, 0, 7, 9, 35, 100} {
		if err := c.Check(strconv.Itoa(x)); !errors.Is(err, ErrMismatch) {
			t.Fatalf("expected mismatch for %d, got %v", x, err)
		}
	}
}

func TestChallengeOverflowIsMismatch(t *testing.T) {
	c := Challenge{OperandA: 3, OperandB: 5}
	for _, s := range []string{"99999999999999999999", "-99999999999999999999", " 123456789012345678901234567890 "} {
		if err := c.Check(s); !errors.Is(err, ErrMismatch) {
			t.Fatalf("expected mismatch for %q, got %v", s, err)
		}
		if a := ParseAttempt(s); !a.Valid || !a.Overflow {
			t.Fatalf("expected %q to parse as an overflowing integer, got %+v", s, a)
		}
	}
}

func TestChallengeRejectsNonNumeric(t *testing.T) {
	c := Challenge{OperandA: 3, OperandB: 5}
	for _, s := range []string{"", "abc", "8a", "eight", "8.0", "3+5", " "} {
		if err := c.Check(s); !errors.Is(err, ErrParse) {
			t.Fatalf("expected parse error for %q, got %v", s, err)
		}
	}
}

func TestChallengePromptMatchesExpected(t *testing.T) {
	c := Challenge{OperandA: 3, OperandB: 5}
	if got := c.Prompt(); got != "3 + 5" {
		t.Fatalf("expected prompt %q, got %q", "3 + 5", got)
	}
	if c.Expected() != 8 {
		t.Fatalf("expected 8, got %d", c.Expected())
	}
	if err := c.Check(" 8 "); err != nil {
		t.Fatalf("expected surrounding whitespace to be ignored, got %v", err)
	}
}

func TestChallengeInRange(t *testing.T) {
	if !(Challenge{OperandA: 0, OperandB: 20}).InRange(20) {
		t.Fatalf("expected 0 and 20 in range")
	}
	if (Challenge{OperandA: -1, OperandB: 2}).InRange(20) {
		t.Fatalf("expected negative operand out of range")
	}
	if (Challenge{OperandA: 21, OperandB: 2}).InRange(20) {
		t.Fatalf("expected 21 out of range")
	}
}

func TestSurveyAssignIDs(t *testing.T) {
	s := Survey{
		Title:     "Transit",
		Questions: []Question{{Text: "More buses?"}, {ID: "fixed", Text: "Bike lanes?"}},
	}
	s.AssignIDs()
	if s.ID != HashID("Transit") {
		t.Fatalf("expected title hash id, got %s", s.ID)
	}
	if s.Questions[0].ID != HashID("More buses?") {
		t.Fatalf("expected question hash id, got %s", s.Questions[0].ID)
	}
	if s.Questions[1].ID != "fixed" {
		t.Fatalf("expected explicit id kept, got %s", s.Questions[1].ID)
	}
	if _, ok := s.Question("fixed"); !ok {
		t.Fatalf("expected question lookup to succeed")
	}
}
