package models

const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
)

const (
	AnswerKeyScalar = "scalar"
	AnswerKeyMulti  = "multi"
)

// AnswerKey is the tagged answer-key variant. Kind selects which field is
// meaningful: Value for scalar keys (single choice, true/false, short answer),
// Values for multi-select keys.
type AnswerKey struct {
	Kind   string   `bson:"kind" json:"kind"`
	Value  string   `bson:"value,omitempty" json:"value,omitempty"`
	Values []string `bson:"values,omitempty" json:"values,omitempty"`
}

type Question struct {
	Prompt      string    `bson:"prompt" json:"prompt"`
	Type        string    `bson:"type" json:"type"`
	Options     []string  `bson:"options" json:"options"`
	CorrectKey  AnswerKey `bson:"correct_key" json:"correct_key"`
	Points      int       `bson:"points" json:"points"`
	Explanation string    `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

// Normalize applies the question defaults: every question is worth at least
// one point and short-answer questions carry no options.
func (q *Question) Normalize() {
	if q.Points < 1 {
		q.Points = 1
	}
	if q.Type == QuestionTypeShortAnswer {
		q.Options = nil
	}
	if q.CorrectKey.Kind == "" {
		q.CorrectKey.Kind = AnswerKeyScalar
	}
}
