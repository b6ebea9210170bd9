// Package server exposes the teaching agent over HTTP: one chat entry
// point that runs the generation pipeline, plus the narration-audio proxy.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lucid_teaching_agent/agent"
	"lucid_teaching_agent/auth"
	"lucid_teaching_agent/logger"
)

type Server struct {
	pipeline  *agent.Pipeline
	ttsHandle gin.HandlerFunc
	verifier  *auth.Verifier // nil disables auth
	log       *logger.Logger
}

func New(pipeline *agent.Pipeline, ttsHandle gin.HandlerFunc, verifier *auth.Verifier, log *logger.Logger) (*Server, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	return &Server{
		pipeline:  pipeline,
		ttsHandle: ttsHandle,
		verifier:  verifier,
		log:       log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(s.log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/", s.handleRoot)

	api := r.Group("/")
	if s.verifier != nil {
		api.Use(requireAuth(s.verifier, s.log))
	}
	api.POST("/chat", s.handleChat)
	if s.ttsHandle != nil {
		api.POST("/tts", s.ttsHandle)
	}
	return r
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Lucid Agent API is running"})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
	// History is accepted for wire compatibility; the pipeline classifies
	// only the latest turn.
	History     []map[string]string `json:"history,omitempty"`
	CurrentCode string              `json:"current_code,omitempty"`
}

type chatResponse struct {
	Response    string         `json:"response"`
	VisualState agent.Artifact `json:"visual_state"`
}

// handleChat runs one pipeline pass per request. A hard generation failure
// aborts the turn with 500; the caller's artifact is never partially
// overwritten since the pipeline only replaces it after a successful call.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	st := agent.State{
		Messages: []agent.Message{{Role: "user", Content: req.Message}},
	}
	// Seed previous code so modify/fix have something to work on.
	if req.CurrentCode != "" {
		st.Artifact.Code = req.CurrentCode
	}

	out, err := s.pipeline.Run(c.Request.Context(), st)
	if err != nil {
		s.log.Error("chat turn failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:    agent.Summary(out),
		VisualState: out.Artifact,
	})
}
