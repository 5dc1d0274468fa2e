package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	userservice "showcase/contexts/identity/user-service"
	admindashboardservice "showcase/contexts/internal-ops/admin-dashboard-service"
	blogservice "showcase/contexts/publishing/blog-service"
	awardservice "showcase/contexts/showcase/award-service"
	competitionservice "showcase/contexts/showcase/competition-service"
	projectservice "showcase/contexts/showcase/project-service"
	votingservice "showcase/contexts/showcase/voting-service"
	"showcase/internal/platform/objectstore"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "showcase/internal/platform/httpserver/docs"
)

// Modules bundles the context modules the server fronts.
type Modules struct {
	Projects     projectservice.Module
	Competitions competitionservice.Module
	Awards       awardservice.Module
	Votes        votingservice.Module
	Posts        blogservice.Module
	Users        userservice.Module
	Dashboard    admindashboardservice.Module
	Uploads      objectstore.Store
	Media        *objectstore.MemoryStore
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	modules Modules
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		modules: modules,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public surface.
	s.mux.HandleFunc("POST /api/projects", s.handleSubmitProject)
	s.mux.HandleFunc("GET /api/projects", s.handleListPublicProjects)
	s.mux.HandleFunc("GET /api/projects/vote/status", s.handleVoteStatus)
	s.mux.HandleFunc("GET /api/projects/{project_id}", s.handleGetProject)
	s.mux.HandleFunc("POST /api/projects/{project_id}/vote", s.handleVote)
	s.mux.HandleFunc("GET /api/competitions", s.handleListPublicCompetitions)
	s.mux.HandleFunc("GET /api/competitions/{competition_id}", s.handleGetCompetition)
	s.mux.HandleFunc("GET /api/awards", s.handleListPublicAwards)
	s.mux.HandleFunc("GET /api/awards/{award_id}", s.handleGetAward)
	s.mux.HandleFunc("POST /api/awards", s.handleSubmitAward)
	s.mux.HandleFunc("GET /api/posts", s.handleListPublicPosts)
	s.mux.HandleFunc("GET /api/posts/{slug}", s.handleGetPostBySlug)
	s.mux.HandleFunc("GET /media/{key}", s.handleServeMedia)

	// Admin surface.
	s.mux.HandleFunc("GET /api/admin/projects", s.handleAdminListProjects)
	s.mux.HandleFunc("POST /api/admin/projects/feature", s.handleFeatureProject)
	s.mux.HandleFunc("POST /api/admin/projects/{project_id}/accept", s.handleAcceptProject)
	s.mux.HandleFunc("POST /api/admin/projects/{project_id}/reject", s.handleRejectProject)
	s.mux.HandleFunc("DELETE /api/admin/projects/{project_id}", s.handleDeleteProject)

	s.mux.HandleFunc("GET /api/admin/competitions", s.handleAdminListCompetitions)
	s.mux.HandleFunc("POST /api/admin/competitions", s.handleSubmitCompetition)
	s.mux.HandleFunc("POST /api/admin/competitions/{competition_id}/accept", s.handleAcceptCompetition)
	s.mux.HandleFunc("POST /api/admin/competitions/{competition_id}/reject", s.handleRejectCompetition)
	s.mux.HandleFunc("DELETE /api/admin/competitions/{competition_id}", s.handleDeleteCompetition)

	s.mux.HandleFunc("GET /api/admin/awards", s.handleAdminListAwards)
	s.mux.HandleFunc("POST /api/admin/awards/{award_id}/accept", s.handleAcceptAward)
	s.mux.HandleFunc("POST /api/admin/awards/{award_id}/reject", s.handleRejectAward)
	s.mux.HandleFunc("DELETE /api/admin/awards/{award_id}", s.handleDeleteAward)

	s.mux.HandleFunc("GET /api/admin/posts", s.handleAdminListPosts)
	s.mux.HandleFunc("POST /api/admin/posts", s.handleCreatePost)
	s.mux.HandleFunc("PUT /api/admin/posts/{post_id}", s.handleUpdatePost)
	s.mux.HandleFunc("POST /api/admin/posts/{post_id}/publish", s.handlePublishPost)
	s.mux.HandleFunc("POST /api/admin/posts/{post_id}/unpublish", s.handleUnpublishPost)
	s.mux.HandleFunc("DELETE /api/admin/posts/{post_id}", s.handleDeletePost)

	s.mux.HandleFunc("GET /api/admin/users", s.handleAdminListUsers)
	s.mux.HandleFunc("POST /api/admin/users", s.handleCreateUser)
	s.mux.HandleFunc("PUT /api/admin/users/{user_id}/role", s.handleChangeUserRole)
	s.mux.HandleFunc("DELETE /api/admin/users/{user_id}", s.handleDeleteUser)

	s.mux.HandleFunc("GET /api/admin/dashboard", s.handleDashboard)
	s.mux.HandleFunc("POST /api/admin/uploads", s.handleUpload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, writeError func(w http.ResponseWriter, status int, code string, message string)) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

// resolveClientIP trusts the first hop of X-Forwarded-For; the
// remote address is the fallback for direct connections.
func resolveClientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}

// identity is what the gateway's session layer forwards on admin
// calls. Role interpretation stays inside each context.
type identity struct {
	ID   string
	Role string
}

func resolveIdentity(r *http.Request) identity {
	return identity{
		ID:   strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role: strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role"))),
	}
}

func hasBearerToken(r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	return len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != ""
}

func queryPage(r *http.Request) (page int, pageSize int) {
	query := r.URL.Query()
	if raw := query.Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	if raw := query.Get("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}
	return page, pageSize
}
