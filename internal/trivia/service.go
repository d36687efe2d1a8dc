package trivia

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// CategoryCache stores the category map (implemented by the Redis-backed CategoryCache).
// Get returns nil, nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) (Categories, error)
	Set(ctx context.Context, categories Categories) error
}

type noopCache struct{}

func (noopCache) Get(context.Context) (Categories, error) { return nil, nil }
func (noopCache) Set(context.Context, Categories) error   { return nil }

// Service implements the trivia use cases over the question and category stores.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	selector   *Selector
	pageSize   int
	logger     zerolog.Logger
}

type ServiceOptions struct {
	PageSize int
	Policy   Policy
	// Intn overrides the random source used by PolicyRandom.
	Intn func(n int) int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		selector:   NewSelector(opts.Policy, opts.Intn),
		pageSize:   pageSize,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns the category map. An empty table is ErrNotFound.
func (s *Service) Categories(ctx context.Context) (Categories, error) {
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return categories, nil
}

// RefreshCategories reloads the category map from the store into the cache.
func (s *Service) RefreshCategories(ctx context.Context) error {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, categories)
}

func (s *Service) categoryMap(ctx context.Context) (Categories, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("category cache read failed")
	}

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, categories); err != nil {
		s.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return categories, nil
}

func (s *Service) loadCategories(ctx context.Context) (Categories, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return toCategories(rows), nil
}

// ListQuestions returns one page of all questions plus the category map.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	all := toQuestions(rows)
	return QuestionPage{
		Questions:  Paginate(all, page, s.pageSize),
		Total:      len(all),
		Categories: categories,
	}, nil
}

// QuestionsByCategory returns one page of the questions in a category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int32, page int) (QuestionPage, error) {
	row, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuestionPage{}, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		return QuestionPage{}, fmt.Errorf("get category: %w", err)
	}

	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions by category: %w", err)
	}
	all := toQuestions(rows)
	return QuestionPage{
		Questions: Paginate(all, page, s.pageSize),
		Total:     len(all),
		Category:  &Category{ID: row.ID, Type: row.Type},
	}, nil
}

// SearchQuestions returns one page of the questions whose text contains term.
// No match is ErrNotFound.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("search questions: %w", err)
	}
	if len(rows) == 0 {
		return QuestionPage{}, fmt.Errorf("search %q: %w", term, ErrNotFound)
	}
	all := toQuestions(rows)
	return QuestionPage{
		Questions: Paginate(all, page, s.pageSize),
		Total:     len(all),
	}, nil
}

// CreateQuestion validates and stores a question. Store failures are ErrUnprocessable.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (Question, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := validateNewQuestion(in); err != nil {
		return Question{}, err
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		s.logStoreFailure(err, "question insert failed")
		return Question{}, fmt.Errorf("insert question: %w: %w", ErrUnprocessable, err)
	}
	questionsCreated.Inc()
	return toQuestion(row), nil
}

// DeleteQuestion removes one question and returns the given page of what remains.
func (s *Service) DeleteQuestion(ctx context.Context, id int32, page int) (DeleteResult, error) {
	affected, err := s.questions.Delete(ctx, id)
	if err != nil {
		s.logStoreFailure(err, "question delete failed")
		return DeleteResult{}, fmt.Errorf("delete question %d: %w: %w", id, ErrUnprocessable, err)
	}
	if affected == 0 {
		return DeleteResult{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	questionsDeleted.Inc()

	rows, err := s.questions.List(ctx)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("list questions: %w", err)
	}
	all := toQuestions(rows)
	return DeleteResult{
		Deleted:   id,
		Questions: Paginate(all, page, s.pageSize),
		Total:     len(all),
	}, nil
}

// NextQuizQuestion plays one quiz round over the chosen category (or all of them).
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (QuizRound, error) {
	var (
		rows []sqlcgen.Question
		err  error
	)
	if req.CategoryID == AllCategories {
		rows, err = s.questions.List(ctx)
	} else {
		rows, err = s.questions.ListByCategory(ctx, req.CategoryID)
	}
	if err != nil {
		return QuizRound{}, fmt.Errorf("load quiz candidates: %w", err)
	}

	q, history := s.selector.Next(toQuestions(rows), req.Previous)
	if q == nil {
		quizRounds.WithLabelValues("complete").Inc()
	} else {
		quizRounds.WithLabelValues("question").Inc()
	}
	return QuizRound{Question: q, Previous: history}, nil
}

func validateNewQuestion(in NewQuestion) error {
	switch {
	case in.Question == "":
		return fieldErr("question", "is required")
	case in.Answer == "":
		return fieldErr("answer", "is required")
	case in.Category <= 0:
		return fieldErr("category", "must be a positive integer")
	case in.Difficulty < MinDifficulty || in.Difficulty > MaxDifficulty:
		return fieldErr("difficulty", fmt.Sprintf("must be between %d and %d", MinDifficulty, MaxDifficulty))
	}
	return nil
}

func (s *Service) logStoreFailure(err error, msg string) {
	event := s.logger.Warn().Err(err)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		event = event.Str("pg_code", pgErr.Code).Str("constraint", pgErr.ConstraintName)
	}
	event.Msg(msg)
}
