package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/duarte/imovest/internal/analysis"
	"github.com/duarte/imovest/internal/config"
	"github.com/duarte/imovest/internal/session"
	"github.com/duarte/imovest/internal/view"
)

// Server is the web front end: a submission page, the outbound analysis
// call, and the report page reading the stored snapshot.
type Server struct {
	Echo     *echo.Echo
	Client   *analysis.Client
	Sessions *session.Store
	Cookies  *session.CookieCodec
}

func NewServer(cfg *config.Config) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if len(cfg.Server.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	codec, err := session.NewCookieCodec(cfg.Session.Secret, ttl)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Echo:     e,
		Client:   analysis.NewClient(cfg.Analyzer.BaseURL, time.Duration(cfg.Analyzer.TimeoutSeconds)*time.Second),
		Sessions: session.NewStore(ttl),
		Cookies:  codec,
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.GET("/", s.handleIndex)
	s.Echo.POST("/analyze", s.handleAnalyze)
	s.Echo.GET("/report", s.handleReport)
	s.Echo.GET("/static/placeholder.svg", s.handlePlaceholder)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// indexData feeds the submission page template.
type indexData struct {
	URL      string
	Strategy string
	Warning  string
	Error    string
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index", indexData{})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	rawURL := c.FormValue("url")
	strategy := c.FormValue("rental_strategy")

	data := indexData{URL: rawURL, Strategy: strategy}

	if strings.TrimSpace(rawURL) == "" {
		data.Warning = "Please enter a listing URL."
		return c.Render(http.StatusBadRequest, "index", data)
	}

	var opts *analysis.AnalyzeOptions
	if strategy != "" {
		opts = &analysis.AnalyzeOptions{RentalStrategy: strategy}
	}

	// The URL goes out exactly as typed; the service owns validation.
	snapshot, err := s.Client.Analyze(c.Request().Context(), rawURL, opts)
	if err != nil {
		c.Logger().Errorf("analysis request failed: %v", err)
		var apiErr *analysis.APIError
		if errors.As(err, &apiErr) {
			data.Error = apiErr.Error()
		} else {
			data.Error = "Could not reach the analysis service: " + err.Error()
		}
		// Back to the editable idle state, input preserved.
		return c.Render(http.StatusBadGateway, "index", data)
	}

	sessionID, err := s.sessionID(c)
	if err != nil {
		c.Logger().Errorf("failed to establish session: %v", err)
		data.Error = "Could not establish a session."
		return c.Render(http.StatusInternalServerError, "index", data)
	}

	// The snapshot replaces any previous one wholesale.
	s.Sessions.Put(sessionID, snapshot)
	return c.Redirect(http.StatusSeeOther, "/report")
}

func (s *Server) handleReport(c echo.Context) error {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return c.Render(http.StatusOK, "report", view.Empty())
	}

	sessionID, err := s.Cookies.Decode(cookie.Value)
	if err != nil {
		return c.Render(http.StatusOK, "report", view.Empty())
	}

	snapshot, ok := s.Sessions.Get(sessionID)
	if !ok {
		return c.Render(http.StatusOK, "report", view.Empty())
	}

	res, err := analysis.Decode(snapshot)
	if err != nil {
		// Malformed snapshot is a diagnostics concern, not a user error.
		c.Logger().Errorf("stored snapshot is not valid JSON: %v", err)
		return c.Render(http.StatusOK, "report", view.Empty())
	}

	return c.Render(http.StatusOK, "report", view.Build(res))
}

func (s *Server) handlePlaceholder(c echo.Context) error {
	return c.Blob(http.StatusOK, "image/svg+xml", placeholderSVG)
}

// sessionID returns the ID from a valid session cookie, issuing a new
// session when the cookie is missing or stale.
func (s *Server) sessionID(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		if id, err := s.Cookies.Decode(cookie.Value); err == nil {
			return id, nil
		}
	}

	id, cookie, err := s.Cookies.Issue()
	if err != nil {
		return "", err
	}
	c.SetCookie(cookie)
	return id, nil
}

// Start runs the server on the given port.
func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

// Close releases the session store's background resources.
func (s *Server) Close() {
	s.Sessions.Close()
}
