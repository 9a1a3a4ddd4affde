package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/shared/server/middleware"
	"interview-coach/internal/shared/server/request"
	"interview-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/record-session", h.recordSession)
	rg.GET("/profile/:email", h.getProfile)
}

type recordSessionRequest struct {
	UserEmail   string        `json:"user_email" binding:"required,email"`
	SessionData *SessionInput `json:"session_data" binding:"required"`
}

type recordSessionResponse struct {
	Success bool        `json:"success"`
	Profile UserProfile `json:"profile"`
}

const missingSessionFields = "Missing or invalid fields: user_email, session_data"

func (h *Handler) recordSession(c *gin.Context) {
	var req recordSessionRequest
	if err := request.DecodeObject(c, &req); err != nil {
		msg := missingSessionFields
		if errors.Is(err, request.ErrMalformedBody) {
			msg = request.Message(err, msg)
		}
		respond.Error(c, http.StatusBadRequest, msg)
		return
	}

	email := NormalizeEmail(req.UserEmail)
	middleware.SetUserEmail(c, email)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	profile, err := h.Svc.RecordSession(ctx, email, *req.SessionData)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to record session")
		}
		return
	}

	respond.OK(c, recordSessionResponse{Success: true, Profile: profile})
}

func (h *Handler) getProfile(c *gin.Context) {
	email := NormalizeEmail(c.Param("email"))
	middleware.SetUserEmail(c, email)

	profile, ok := h.Svc.GetUserProfile(email)
	if !ok {
		respond.OK(c, gin.H{})
		return
	}
	respond.OK(c, profile)
}
