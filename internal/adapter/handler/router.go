package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/borderpass/borderpass-backend/internal/relay"
	"github.com/borderpass/borderpass-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	interviewHandler *Interview
	practiceHandler  *Practice
	countryHandler   *Country
	profileHandler   *Profile
	relayHandler     *relay.Handler
	authMiddleware   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	interviewHandler *Interview,
	practiceHandler *Practice,
	countryHandler *Country,
	profileHandler *Profile,
	relayHandler *relay.Handler,
	authMiddleware echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:              cfg,
		interviewHandler: interviewHandler,
		practiceHandler:  practiceHandler,
		countryHandler:   countryHandler,
		profileHandler:   profileHandler,
		relayHandler:     relayHandler,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Session relay; browser websocket clients authenticate upstream
	if rt.relayHandler != nil {
		e.GET("/ws", rt.relayHandler.ServeWS)
	}

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupInterviewRoutes(v1)
	rt.setupPracticeRoutes(v1)
	rt.setupCountryRoutes(v1)

	v1.GET("/me", rt.profileHandler.Me, rt.authMiddleware)
}

// setupInterviewRoutes configures interview session routes
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	interviews := g.Group("/interviews", rt.authMiddleware)

	interviews.POST("", rt.interviewHandler.StartInterview)
	interviews.GET("", rt.interviewHandler.ListSessions)
	interviews.GET("/:id", rt.interviewHandler.GetSession)
	interviews.POST("/:id/transcript", rt.interviewHandler.AppendTranscript)
	interviews.GET("/:id/transcript", rt.interviewHandler.GetTranscript)
	interviews.POST("/:id/score", rt.interviewHandler.ScoreSession)
	interviews.POST("/:id/end", rt.interviewHandler.EndSession)
	interviews.PUT("/:id/recording", rt.interviewHandler.AttachRecording)
	interviews.GET("/:id/recording", rt.interviewHandler.GetRecordingURL)
}

// setupPracticeRoutes configures practice drill routes
func (rt *Router) setupPracticeRoutes(g *echo.Group) {
	practice := g.Group("/practice", rt.authMiddleware)

	practice.POST("/evaluate", rt.practiceHandler.Evaluate)
}

// setupCountryRoutes configures country catalogue routes (public)
func (rt *Router) setupCountryRoutes(g *echo.Group) {
	countries := g.Group("/countries")

	countries.GET("", rt.countryHandler.ListCountries)
	countries.GET("/:code", rt.countryHandler.GetCountry)
	countries.GET("/:code/questions", rt.countryHandler.ListQuestions)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
