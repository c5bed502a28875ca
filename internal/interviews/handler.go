package interviews

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/shared/server/middleware"
	"interview-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews", h.create)
	rg.GET("/interviews", h.list)
	rg.GET("/interviews/:mockId", h.get)
	rg.PUT("/interviews/:mockId", h.update)
}

type createRequest struct {
	JobPosition   string `json:"jobPosition"`
	JobDesc       string `json:"jobDesc"`
	JobExperience string `json:"jobExperience"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	email := middleware.UserEmailFromContext(c)
	if email == "" {
		respond.Error(c, http.StatusUnauthorized, "login required")
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	iv, err := h.Svc.Create(ctx, CreateInput{
		JobPosition:   req.JobPosition,
		JobDesc:       req.JobDesc,
		JobExperience: req.JobExperience,
		CreatedBy:     email,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to create interview")
		return
	}

	respond.Created(c, toResponse(iv))
}

func (h *Handler) list(c *gin.Context) {
	email := middleware.UserEmailFromContext(c)
	if email == "" {
		respond.Error(c, http.StatusUnauthorized, "login required")
		return
	}

	items, err := h.Svc.List(c.Request.Context(), email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list interviews")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, iv := range items {
		resp = append(resp, toResponse(iv))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	mockID := strings.TrimSpace(c.Param("mockId"))

	iv, err := h.Svc.Get(c.Request.Context(), mockID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "interview not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to fetch interview")
		}
		return
	}

	respond.OK(c, toResponse(iv))
}

type updateRequest struct {
	Status string   `json:"status"`
	Score  *float64 `json:"score"`
}

func (h *Handler) update(c *gin.Context) {
	mockID := strings.TrimSpace(c.Param("mockId"))

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status != string(StatusCompleted) {
		respond.Error(c, http.StatusBadRequest, "only the Completed status can be set")
		return
	}
	if req.Score == nil {
		respond.Error(c, http.StatusBadRequest, "score is required")
		return
	}

	iv, err := h.Svc.Complete(c.Request.Context(), mockID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "interview not found")
		case errors.Is(err, ErrAlreadyCompleted):
			respond.Error(c, http.StatusConflict, "interview already completed")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to update interview")
		}
		return
	}

	c.Set("statusTransition", "Pending->Completed")
	respond.OK(c, toResponse(iv))
}

func toResponse(iv Interview) gin.H {
	resp := gin.H{
		"mockId":          iv.MockID,
		"jobPosition":     iv.JobPosition,
		"jobDesc":         iv.JobDesc,
		"jobExperience":   iv.JobExperience,
		"questions":       iv.Questions,
		"questionsStatus": iv.QuestionsStatus,
		"status":          iv.Status,
		"createdBy":       iv.CreatedBy,
		"createdAt":       iv.CreatedAt,
	}
	if iv.Score != nil {
		resp["score"] = *iv.Score
	}
	if iv.CompletedAt != nil {
		resp["completedAt"] = *iv.CompletedAt
	}
	if iv.GenerationError != "" {
		resp["generationError"] = iv.GenerationError
	}
	return resp
}
