package fixture

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// Server is the fixture GraphQL endpoint.
type Server struct {
	store  *Store
	logger *zap.Logger
	echo   *echo.Echo
}

// NewServer wires routes and middleware.
func NewServer(store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{store: store, logger: logger, echo: e}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST("/graphql", s.handleGraphQL)

	return s
}

// Handler exposes the server as an http.Handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) handleGraphQL(c echo.Context) error {
	var req graphqlRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"errors": []graphqlError{{Message: "invalid request body"}},
		})
	}

	roots := requestedRoots(req.Query)
	if len(roots) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"errors": []graphqlError{{Message: "unsupported query: expected users or posts"}},
		})
	}

	if msg, ok := s.store.ForcedError(operationName(req, roots)); ok {
		return c.JSON(http.StatusOK, echo.Map{
			"data":   nil,
			"errors": []graphqlError{{Message: msg}},
		})
	}

	data := echo.Map{}
	for _, root := range roots {
		switch root {
		case "users":
			data["users"] = s.store.Users(nameContains(req.Variables))
		case "posts":
			data["posts"] = s.store.Posts()
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

// requestedRoots finds the supported root fields selected by the document.
func requestedRoots(query string) []string {
	var roots []string
	for _, root := range []string{"users", "posts"} {
		if strings.Contains(query, root+"(") || strings.Contains(query, root+" {") || strings.Contains(query, root+"{") {
			roots = append(roots, root)
		}
	}
	return roots
}

func operationName(req graphqlRequest, roots []string) string {
	if req.OperationName != "" {
		return req.OperationName
	}
	if len(roots) == 1 && roots[0] == "posts" {
		return "GetPosts"
	}
	return "GetUsers"
}

// nameContains digs filters.name.contains out of the variables.
func nameContains(vars map[string]any) string {
	filters, _ := vars["filters"].(map[string]any)
	name, _ := filters["name"].(map[string]any)
	contains, _ := name["contains"].(string)
	return strings.TrimSpace(contains)
}
