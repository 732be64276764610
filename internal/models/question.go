package models

// QuestionKind selects how a question is presented.
type QuestionKind string

const (
	KindPicture QuestionKind = "match-by-picture"
	KindAudio   QuestionKind = "match-by-audio"
)

// QuestionKinds lists the supported kinds in a stable order.
var QuestionKinds = []QuestionKind{KindPicture, KindAudio}

// Question is one step of a round. Options always contain Target exactly once.
type Question struct {
	Kind    QuestionKind `json:"kind"`
	Target  Item         `json:"target"`
	Options []Item       `json:"options"`
}

// HasOption reports whether id is one of the question's options.
func (q Question) HasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// IsCorrect reports whether choosing id answers the question.
func (q Question) IsCorrect(id string) bool {
	return q.Target.ID == id
}
