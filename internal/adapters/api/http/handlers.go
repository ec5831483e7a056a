package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"replymate/internal/adapters/websocket"
	"replymate/internal/domain/metrics"
	"replymate/internal/domain/ports"
	"replymate/internal/domain/services"
	"replymate/internal/pkg/constants"
	"replymate/internal/pkg/httputil"
)

// APIHandlers contains all HTTP API handlers
type APIHandlers struct {
	accounts  *services.AccountService
	replies   *services.ReplyService
	store     *services.ConversationStore
	session   *services.Session
	storage   ports.StoragePort
	backend   ports.BackendPort
	collector *metrics.Collector
	wsHub     *websocket.Hub
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(accounts *services.AccountService, replies *services.ReplyService, store *services.ConversationStore, session *services.Session, storage ports.StoragePort, backend ports.BackendPort, collector *metrics.Collector, hub *websocket.Hub) *APIHandlers {
	return &APIHandlers{
		accounts:  accounts,
		replies:   replies,
		store:     store,
		session:   session,
		storage:   storage,
		backend:   backend,
		collector: collector,
		wsHub:     hub,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandlers) SetupRoutes(r *gin.Engine, corsEnabled bool) {
	corsConfig := httputil.DefaultMiddlewareConfig
	corsConfig.EnableCORS = corsEnabled
	r.Use(httputil.CORSMiddleware(corsConfig))

	// Health check
	r.GET("/health", h.handleHealth)

	api := r.Group("/api/" + constants.APIVersion)
	{
		// Session lifecycle
		api.POST("/session", h.signIn)
		api.DELETE("/session", h.signOut)
		api.GET("/profile", h.getProfile)
		api.PUT("/profile/name", h.updateName)
		api.POST("/users", h.registerUser)

		// Conversation cache
		api.GET("/conversations", h.listConversations)
		api.GET("/conversations/:threadId", h.getConversation)
		api.DELETE("/conversations/:threadId", h.deleteConversation)
		api.POST("/conversations/:threadId/regenerate", h.regenerateReply)

		// Generation
		api.POST("/replies", h.generateReply)

		// Personalities
		api.GET("/personalities", h.listPersonalities)
		api.POST("/personalities", h.createPersonality)
		api.GET("/personalities/:name", h.getPersonality)
		api.PUT("/personalities/:name", h.updatePersonality)
		api.DELETE("/personalities/:name", h.deletePersonality)

		// Diagnostics
		api.GET("/system/metrics", h.getSystemMetrics)
	}

	// WebSocket event feed
	r.GET("/ws", h.wsHub.HandleWebSocket)
}

// respondServiceError maps domain failures onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoActiveSession):
		httputil.ErrorResponse(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrConversationNotFound):
		httputil.NotFoundError(c, err)
	case ports.IsNotFound(err):
		httputil.NotFoundError(c, err)
	case ports.IsPersistence(err):
		httputil.InternalServerError(c, err)
	default:
		var genErr *ports.GenerationError
		var profErr *ports.ProfileFetchError
		if errors.As(err, &genErr) || errors.As(err, &profErr) {
			httputil.BadGatewayError(c, err)
			return
		}
		httputil.InternalServerError(c, err)
	}
}

// Health check endpoint
func (h *APIHandlers) handleHealth(c *gin.Context) {
	status := gin.H{
		"status":      constants.StatusOK,
		"timestamp":   time.Now().Unix(),
		"service":     constants.ServiceName,
		"connections": h.wsHub.ConnectionCount(),
	}

	ctx, cancel := httputil.WithHealthTimeout()
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		status["storage"] = constants.StatusError
		status["storage_error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["storage"] = constants.StatusOK

	if err := h.backend.Ping(ctx); err != nil {
		status["backend"] = constants.StatusError
		status["backend_error"] = err.Error()
	} else {
		status["backend"] = constants.StatusOK
	}

	c.JSON(http.StatusOK, status)
}

// Session handlers

func (h *APIHandlers) signIn(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	profile, err := h.accounts.SignIn(ctx, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	httputil.SuccessResponse(c, gin.H{
		"userId":  req.UserID,
		"profile": profile,
	})
}

func (h *APIHandlers) signOut(c *gin.Context) {
	ctx, cancel := httputil.WithStorageTimeout()
	defer cancel()

	if err := h.accounts.SignOut(ctx); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"signedOut": true})
}

func (h *APIHandlers) registerUser(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	profile, err := h.accounts.Register(ctx, req.Name, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.CreatedResponse(c, gin.H{
		"userId":  req.UserID,
		"profile": profile,
	})
}

func (h *APIHandlers) getProfile(c *gin.Context) {
	profile := h.session.Profile()
	if profile == nil {
		httputil.ErrorResponse(c, http.StatusUnauthorized, services.ErrNoActiveSession)
		return
	}
	httputil.SuccessResponse(c, profile)
}

func (h *APIHandlers) updateName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	if err := h.accounts.UpdateName(ctx, req.Name); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, h.session.Profile())
}

// Conversation handlers

func (h *APIHandlers) listConversations(c *gin.Context) {
	conversations := h.store.List()

	limit := httputil.ParseIntParam(c, "limit", len(conversations))
	if limit < len(conversations) {
		conversations = conversations[:limit]
	}

	httputil.SuccessResponse(c, gin.H{
		"conversations": conversations,
		"total":         h.store.Len(),
	})
}

func (h *APIHandlers) getConversation(c *gin.Context) {
	threadID := c.Param("threadId")

	conversation, ok := h.store.GetByThreadID(threadID)
	if !ok {
		httputil.NotFoundError(c, fmt.Errorf("%s: %s", constants.ErrMsgConversationNotFound, threadID))
		return
	}
	httputil.SuccessResponse(c, conversation)
}

func (h *APIHandlers) deleteConversation(c *gin.Context) {
	threadID := c.Param("threadId")

	ctx, cancel := httputil.WithStorageTimeout()
	defer cancel()

	if err := h.replies.DeleteThread(ctx, threadID); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"deleted": threadID})
}

// Generation handlers

func (h *APIHandlers) generateReply(c *gin.Context) {
	var req struct {
		Context     string `json:"context" binding:"required"`
		ExtraInfo   string `json:"extraInfo"`
		Personality string `json:"personality" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}
	if len(req.Context) < constants.MinContextLength || len(req.Context) > constants.MaxContextLength {
		httputil.BadRequestError(c, fmt.Errorf("context must be between %d and %d characters",
			constants.MinContextLength, constants.MaxContextLength))
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	conversation, err := h.replies.GenerateReply(ctx, req.Context, req.ExtraInfo, req.Personality)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.CreatedResponse(c, conversation)
}

func (h *APIHandlers) regenerateReply(c *gin.Context) {
	threadID := c.Param("threadId")

	var req struct {
		Instruction string `json:"instruction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	conversation, err := h.replies.RegenerateReply(ctx, threadID, req.Instruction)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, conversation)
}

// Personality handlers

func (h *APIHandlers) listPersonalities(c *gin.Context) {
	profile := h.session.Profile()
	if profile == nil {
		httputil.ErrorResponse(c, http.StatusUnauthorized, services.ErrNoActiveSession)
		return
	}
	httputil.SuccessResponse(c, profile.Personalities)
}

func (h *APIHandlers) getPersonality(c *gin.Context) {
	name := c.Param("name")

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	description, err := h.accounts.PersonalityDescription(ctx, name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{
		"name":        name,
		"description": description,
	})
}

func (h *APIHandlers) createPersonality(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}
	if len(req.Name) < constants.MinPersonalityNameLength || len(req.Name) > constants.MaxPersonalityNameLength {
		httputil.BadRequestError(c, fmt.Errorf("personality name must be between %d and %d characters",
			constants.MinPersonalityNameLength, constants.MaxPersonalityNameLength))
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	if err := h.accounts.CreatePersonality(ctx, req.Name, req.Description); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.CreatedResponse(c, h.session.Profile())
}

func (h *APIHandlers) updatePersonality(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequestError(c, err)
		return
	}

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	if err := h.accounts.UpdatePersonality(ctx, name, req.Description); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, h.session.Profile())
}

func (h *APIHandlers) deletePersonality(c *gin.Context) {
	name := c.Param("name")

	ctx, cancel := httputil.WithBackendTimeout()
	defer cancel()

	if err := h.accounts.DeletePersonality(ctx, name); err != nil {
		respondServiceError(c, err)
		return
	}
	httputil.SuccessResponse(c, gin.H{"deleted": name})
}

// Diagnostics

func (h *APIHandlers) getSystemMetrics(c *gin.Context) {
	httputil.SuccessResponse(c, h.collector.Snapshot())
}
