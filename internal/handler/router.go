package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/hellomember/internal/metrics"
	"github.com/hitoshi/hellomember/internal/middleware"
	"github.com/hitoshi/hellomember/internal/security"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// 会員
	MemberService MemberServiceInterface
	Sanitizer     security.NameSanitizer

	// ヘルスチェック・メトリクス
	HealthChecker  HealthChecker
	Gatherer       prometheus.Gatherer
	StatusRecorder middleware.StatusRecorder

	// ミドルウェア依存
	Logger            *slog.Logger
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	CSRFConfig        middleware.CSRFConfig
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → Metrics → SecurityHeaders
//
// HTMLページにはCSRFを、/api以下にはCORSとレート制限を追加で適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sanitizer := deps.Sanitizer
	if sanitizer == nil {
		sanitizer = security.NewNameSanitizer()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	webHandler := NewWebHandler(deps.MemberService, sanitizer)
	memberHandler := NewMemberHandler(deps.MemberService, sanitizer)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- hello ---
	r.Get("/hello-string", HelloString)
	r.Get("/hello-api", HelloAPI)

	// --- HTMLページ ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

		r.Get("/", webHandler.Home)
		r.Get("/hello", Hello)
		r.Get("/hello-mvc", HelloMVC)

		r.Get("/members/new", webHandler.NewMemberForm)
		r.Post("/members/new", webHandler.CreateMember)
		r.Get("/members", webHandler.ListMembers)
	})

	// --- JSON API ---
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Route("/members", func(r chi.Router) {
			// POST /api/members - 会員登録（登録専用レート制限を追加）
			if deps.RateLimiter != nil {
				r.With(deps.RateLimiter.JoinMiddleware()).Post("/", memberHandler.CreateMember)
			} else {
				r.Post("/", memberHandler.CreateMember)
			}
			r.Get("/", memberHandler.ListMembers)
			r.Get("/{id}", memberHandler.GetMember)
		})
	})

	return r
}
