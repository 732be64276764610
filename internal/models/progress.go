package models

// ItemProgress pairs an item with its mastery record.
type ItemProgress struct {
	Item     Item          `json:"item"`
	Record   MasteryRecord `json:"record"`
	Accuracy int           `json:"accuracy"`
	HasData  bool          `json:"has_data"`
}

type TopicProgress struct {
	Topic string         `json:"topic"`
	Items []ItemProgress `json:"items"`
}

// QuestionView is what the lesson page renders for the active question.
type QuestionView struct {
	Topic       string      `json:"topic"`
	Position    int         `json:"position"`
	Length      int         `json:"length"`
	Question    Question    `json:"question"`
	Preferences Preferences `json:"preferences"`
}

// AnswerResult reports the effect of one submitted answer.
type AnswerResult struct {
	Correct   bool   `json:"correct"`
	TargetID  string `json:"target_id"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score,omitempty"`
	Total     int    `json:"total,omitempty"`
	Streak    int    `json:"streak"`
}
