package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// Question is a single survey prompt that participants answer in free text and vote on.
type Question struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Survey is a titled collection of questions.
type Survey struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// SurveySummary is the listing view of a survey.
type SurveySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Questions   int    `json:"questions"`
}

// Summary returns the listing view of s.
func (s Survey) Summary() SurveySummary {
	return SurveySummary{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Questions:   len(s.Questions),
	}
}

// Question looks up a question by ID.
func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// AssignIDs fills missing survey and question IDs with content hashes.
func (s *Survey) AssignIDs() {
	if s.ID == "" {
		s.ID = HashID(s.Title)
	}
	for i := range s.Questions {
		if s.Questions[i].ID == "" {
			s.Questions[i].ID = HashID(s.Questions[i].Text)
		}
	}
}

// HashID derives a stable identifier from content.
func HashID(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Vote is a +1/-1 signal from one participant on one question.
type Vote struct {
	QuestionID string
	Username   string
	Value      int
}

// Answer is one participant's free-text reply to one question.
type Answer struct {
	QuestionID string
	Username   string
	Text       string
}

// QuestionTally aggregates stored responses for one question.
type QuestionTally struct {
	Votes   int
	Answers []string
}

// QuestionResult is the public view of a question with its aggregated responses.
type QuestionResult struct {
	QuestionID string   `json:"questionId"`
	Text       string   `json:"text"`
	Votes      int      `json:"votes"`
	Answers    []string `json:"answers"`
}

// Results captures the aggregated responses for a survey.
type Results struct {
	SurveyID     string           `json:"surveyId"`
	Participants int              `json:"participants"`
	Questions    []QuestionResult `json:"questions"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
