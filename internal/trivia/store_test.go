package trivia

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memStore satisfies the question and category stores with sqlc semantics:
// id ordering, serial ids and a foreign key on question.category.
type memStore struct {
	mu         sync.Mutex
	categories []sqlcgen.Category
	questions  []sqlcgen.Question
	nextID     int32

	listErr   error
	deleteErr error

	categoryLists int
}

func newMemStore() *memStore {
	return &memStore{
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
		},
		nextID: 1,
	}
}

func (s *memStore) add(question string, category int32) sqlcgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := sqlcgen.Question{ID: s.nextID, Question: question, Answer: "answer", Category: category, Difficulty: 2}
	s.nextID++
	s.questions = append(s.questions, q)
	return q
}

func (s *memStore) ListQuestions(_ context.Context) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]sqlcgen.Question(nil), s.questions...), nil
}

func (s *memStore) ListQuestionsByCategory(_ context.Context, category int32) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

func (s *memStore) SearchQuestions(_ context.Context, pattern string) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term := strings.ToLower(likeUnescaper.Replace(strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")))
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), term) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memStore) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCategory(arg.Category) {
		return sqlcgen.Question{}, &pgconn.PgError{Code: "23503", ConstraintName: "questions_category_fkey"}
	}
	q := sqlcgen.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.nextID++
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memStore) ListCategories(_ context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryLists++
	return append([]sqlcgen.Category(nil), s.categories...), nil
}

func (s *memStore) GetCategory(_ context.Context, id int32) (sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

func (s *memStore) hasCategory(id int32) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *memStore) categoryListCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryLists
}

type memoryCache struct {
	mu     sync.Mutex
	value  Categories
	sets   int
	getErr error
}

func (c *memoryCache) Get(_ context.Context) (Categories, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.value, nil
}

func (c *memoryCache) Set(_ context.Context, categories Categories) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = categories
	c.sets++
	return nil
}

func (c *memoryCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

var errStoreDown = errors.New("store down")

func newTestService(t *testing.T, store *memStore, cache CategoryCache, opts ServiceOptions) *Service {
	t.Helper()
	if opts.Policy == "" {
		opts.Policy = PolicySequential
	}
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		cache,
		opts,
		zerolog.New(io.Discard),
	)
}
