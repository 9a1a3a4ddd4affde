package resumes

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 16 << 20 // 16MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		respond.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		respond.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}

	parsed, err := h.Svc.Parse(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "Only PDF and DOCX files are supported")
		case errors.Is(err, ErrUnreadableDocument):
			respond.Error(c, http.StatusBadRequest, "Unable to read document")
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respond.JSON(c, http.StatusOK, parsed)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
