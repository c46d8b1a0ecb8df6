package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/mailforge/handler"
	"github.com/dmitrymomot/mailforge/pkg/editor"
	"github.com/dmitrymomot/mailforge/pkg/email"
	"github.com/dmitrymomot/mailforge/pkg/httpserver"
	"github.com/dmitrymomot/mailforge/pkg/idgen"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/store"
)

// Config holds the API knobs that are not owned by a collaborator.
type Config struct {
	MaxUploadSize   int64         `env:"API_MAX_UPLOAD_SIZE" envDefault:"10485760"`
	HealthTimeout   time.Duration `env:"API_HEALTH_TIMEOUT" envDefault:"2s"`
	TestSendSubject string        `env:"API_TEST_SEND_SUBJECT" envDefault:"Template preview"`
}

// Server exposes editor sessions, stored templates and rendering over HTTP.
type Server struct {
	cfg      Config
	sessions *editor.Manager
	store    store.Store
	mailer   email.Sender
	log      *slog.Logger
	policy   *bluemonday.Policy
	ids      idgen.Generator
	checks   []httpserver.Check

	uploadsDir, uploadsURL string

	onError handler.ErrorHandler[handler.Context]
}

type Option func(*Server)

func WithConfig(cfg Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithStore enables the /templates routes.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithMailer enables test sends.
func WithMailer(m email.Sender) Option {
	return func(s *Server) { s.mailer = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHealthChecks adds readiness checks to /health.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithUploads serves files from dir under urlPrefix, for the local upload
// driver.
func WithUploads(dir, urlPrefix string) Option {
	return func(s *Server) { s.uploadsDir, s.uploadsURL = dir, urlPrefix }
}

// WithTemplateIDGenerator sets how ids are assigned to new stored templates.
func WithTemplateIDGenerator(gen idgen.Generator) Option {
	return func(s *Server) {
		if gen != nil {
			s.ids = gen
		}
	}
}

func New(sessions *editor.Manager, opts ...Option) *Server {
	s := &Server{
		cfg: Config{
			MaxUploadSize:   10 << 20,
			HealthTimeout:   2 * time.Second,
			TestSendSubject: "Template preview",
		},
		sessions: sessions,
		log:      logger.Discard(),
		policy:   bluemonday.UGCPolicy(),
		ids:      idgen.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("api"))
	s.onError = handler.NewErrorHandler(s.log, mapError)
	return s
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(s.log, s.cfg.HealthTimeout, s.checks...))
	r.Get("/blocks", s.listBlocks())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession())
		r.Route("/{id}", func(r chi.Router) {
			r.Use(sessionContext)
			r.Get("/", s.getSession())
			r.Delete("/", s.closeSession())
			r.Post("/drop", s.drop())
			r.Post("/components", s.addComponent())
			r.Patch("/components/{cid}", s.updateComponent())
			r.Delete("/components/{cid}", s.deleteComponent())
			r.Put("/components/{cid}/columns", s.setColumns())
			r.Post("/components/{cid}/image", s.uploadImage())
			r.Post("/undo", s.undo())
			r.Post("/redo", s.redo())
			r.Get("/html", s.renderHTML())
			r.Get("/source", s.renderSource())
			r.Get("/text", s.renderText())
			r.Get("/preview", s.preview())
			r.Post("/send", s.testSend())
			r.Post("/save", s.saveSession())
		})
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates())
		r.Post("/", s.createTemplate())
		r.Get("/{id}", s.getTemplate())
		r.Delete("/{id}", s.deleteTemplate())
		r.Post("/{id}/sessions", s.openTemplate())
	})

	if s.uploadsDir != "" && s.uploadsURL != "" {
		prefix := "/" + strings.Trim(s.uploadsURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(s.uploadsDir))))
	}
	return r
}
