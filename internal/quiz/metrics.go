package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_quiz_rounds_started_total",
		Help: "Quiz rounds started, by scope (all or category).",
	}, []string{"scope"})

	roundsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_quiz_rounds_completed_total",
		Help: "Quiz rounds whose last question was handed out.",
	})

	questionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_quiz_questions_served_total",
		Help: "Questions handed out by the quiz selector.",
	})
)
