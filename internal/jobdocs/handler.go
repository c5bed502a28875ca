package jobdocs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobdocs", h.upload)
	rg.GET("/jobdocs", h.list)
	rg.GET("/jobdocs/:id/text", h.text)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unable to read file")
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to upload job description")
		return
	}

	respond.Created(c, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list job descriptions")
		return
	}

	resp := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) text(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	docID := strings.TrimSpace(c.Param("id"))

	text, err := h.Svc.Text(c.Request.Context(), userID, docID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "job description not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to fetch job description text")
		return
	}

	respond.OK(c, gin.H{"text": text})
}

func toResponse(doc JobDoc) gin.H {
	return gin.H{
		"id":           doc.ID,
		"fileName":     doc.FileName,
		"mimeType":     doc.MimeType,
		"sizeBytes":    doc.SizeBytes,
		"hasExtracted": doc.ExtractedTextKey != "",
		"uploadedAt":   doc.CreatedAt,
	}
}
