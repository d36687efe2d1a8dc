package trivia

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Difficulty bounds accepted on create.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// AllCategories selects every question when used as a quiz category.
const AllCategories int32 = 0

// Question is the payload delivered to clients.
type Question struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int32  `json:"id"`
	Type string `json:"type"`
}

// Categories maps category id to its display label; it encodes as a JSON object
// with string keys.
type Categories map[int32]string

// MarshalJSON writes the keys in numeric id order ("2" before "10").
func (c Categories) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	ids := make([]int32, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(int64(id), 10))
		buf.WriteString(`":`)
		label, err := json.Marshal(c[id])
		if err != nil {
			return nil, err
		}
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewQuestion holds the fields required to create a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

// QuestionPage is one page of an ordered question listing.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories Categories
	Category   *Category
}

// DeleteResult reports a deletion and the page of questions that remain.
type DeleteResult struct {
	Deleted   int32
	Questions []Question
	Total     int
}

// QuizRequest is the client-held quiz state sent with every round.
type QuizRequest struct {
	CategoryID int32
	Previous   []int32
}

// QuizRound is the outcome of one round. Question is nil once the quiz is complete.
type QuizRound struct {
	Question *Question
	Previous []int32
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	qs := make([]Question, 0, len(rows))
	for _, row := range rows {
		qs = append(qs, toQuestion(row))
	}
	return qs
}

func toCategories(rows []sqlcgen.Category) Categories {
	out := make(Categories, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Type
	}
	return out
}
