package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quiz-leaderboard-service/internal/app"
	"quiz-leaderboard-service/internal/metrics"
)

// Options tunes query defaults and CORS.
type Options struct {
	// DefaultLimit caps GET /api/leaderboard when no limit is given; <= 0 returns every entry.
	DefaultLimit int
	// AroundRadius is used when the around query has no radius; <= 0 falls back to 2.
	AroundRadius int
	// AllowedOrigins lists the browser origins allowed to call the API; empty allows any.
	AllowedOrigins []string
}

const defaultAroundRadius = 2

// NewRouter mounts the quiz and leaderboard API.
func NewRouter(quizzes *app.QuizService, board *app.LeaderboardService, log *zap.Logger, m *metrics.Metrics, opts Options) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.AroundRadius <= 0 {
		opts.AroundRadius = defaultAroundRadius
	}

	quizHandler := NewQuizHandler(quizzes, log)
	boardHandler := NewLeaderboardHandler(board, log, opts)
	wsHandler := NewWSHandler(board, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors(opts.AllowedOrigins))
	r.Use(accessLog(log, m))

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", quizHandler.List)
			r.Get("/{id}", quizHandler.Get)
			r.Post("/{id}/submit", quizHandler.Submit)
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", boardHandler.List)
			r.Get("/top/{n}", boardHandler.Top)
			r.Get("/player/{id}", boardHandler.Player)
			r.Get("/around/{id}", boardHandler.Around)
			r.Get("/stats", boardHandler.Stats)
			r.Get("/ws", wsHandler.ServeWS)
		})
	})

	return r
}
