package observability

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes engine activity as Prometheus collectors. Wire it into an
// engine through Hooks().
type Metrics struct {
	nodeVisits   *prometheus.CounterVec
	messages     *prometheus.CounterVec
	achievements prometheus.Counter
	quizOutcomes *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg. Pass
// prometheus.DefaultRegisterer to use the global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_node_visits_total",
				Help: "Conversation nodes entered, by node type.",
			},
			[]string{"node_type"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_messages_total",
				Help: "Transcript messages appended, by sender.",
			},
			[]string{"sender"},
		),
		achievements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "espalier_achievements_total",
				Help: "Achievements unlocked across all sessions.",
			},
		),
		quizOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_quiz_outcomes_total",
				Help: "Quiz submissions resolved, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.nodeVisits, m.messages, m.achievements, m.quizOutcomes)
	return m
}

// NodeVisits returns the node entry counter, labeled by node type.
func (m *Metrics) NodeVisits() *prometheus.CounterVec { return m.nodeVisits }

// Messages returns the transcript message counter, labeled by sender.
func (m *Metrics) Messages() *prometheus.CounterVec { return m.messages }

// Achievements returns the unlocked achievement counter.
func (m *Metrics) Achievements() prometheus.Counter { return m.achievements }

// QuizOutcomes returns the quiz resolution counter, labeled by outcome.
func (m *Metrics) QuizOutcomes() *prometheus.CounterVec { return m.quizOutcomes }

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(string(e.NodeType)).Inc()
		},
		OnMessage: func(_ context.Context, e *domain.MessageEvent) {
			m.messages.WithLabelValues(string(e.Sender)).Inc()
		},
		OnAchievement: func(_ context.Context, e *domain.AchievementEvent) {
			m.achievements.Inc()
		},
		OnQuizResolved: func(_ context.Context, e *domain.QuizEvent) {
			outcome := "incorrect"
			if e.Correct {
				outcome = "correct"
			}
			m.quizOutcomes.WithLabelValues(outcome).Inc()
		},
	}
}
