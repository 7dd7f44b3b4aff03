package domain

import "errors"

var (
	// ErrParse is returned when a challenge answer is not an integer.
	ErrParse = errors.New("answer is not a number")
	// ErrMismatch is returned when a challenge answer is a number but not the expected sum.
	ErrMismatch = errors.New("answer does not match")
	// ErrNoChallenge is returned when an answer is submitted before any challenge was presented.
	ErrNoChallenge = errors.New("no challenge presented")
	// ErrOperandOutOfRange is returned when a challenge operand falls outside the supported range.
	ErrOperandOutOfRange = errors.New("challenge operand out of range")
	// ErrChallengeNotFound is returned for unknown or expired challenge IDs.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrTooManyAttempts is returned once a challenge has used up its attempts; the challenge is discarded.
	ErrTooManyAttempts = errors.New("too many attempts")

	// ErrSurveyNotFound indicates the survey content could not be loaded.
	ErrSurveyNotFound = errors.New("survey not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrParticipantNotFound is returned when a username is not enrolled in a survey.
	ErrParticipantNotFound = errors.New("participant not found in survey")
	// ErrUsernameTaken is returned when a generated username collides with an enrolled one.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrAlreadyAnswered is returned when a participant answers the same question twice.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrAlreadyVoted is returned when a participant votes on the same question twice.
	ErrAlreadyVoted = errors.New("question already voted")
	// ErrInvalidVote is returned for vote values other than -1 and +1.
	ErrInvalidVote = errors.New("vote must be -1 or 1")
	// ErrEmptyAnswer is returned for blank answer text.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrFeedNotFound is returned when subscribing to a survey without a live feed.
	ErrFeedNotFound = errors.New("results feed not found")
)
