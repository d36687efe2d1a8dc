package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizRounds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_quiz_rounds_total",
		Help: "Quiz rounds served, by outcome (question or complete).",
	}, []string{"outcome"})

	questionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_questions_created_total",
		Help: "Questions stored through the API.",
	})

	questionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_questions_deleted_total",
		Help: "Questions removed through the API.",
	})
)
