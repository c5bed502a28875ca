package schedule

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches schedule routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/schedule", h.create)
	rg.GET("/schedule", h.list)
}

type createRequest struct {
	CandidateID    string `json:"candidateId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	Role           string `json:"role"`
	InterviewDate  string `json:"interviewDate"`
	InterviewTime  string `json:"interviewTime"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "login required")
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Svc.Create(c.Request.Context(), CreateInput{
		CandidateID:    req.CandidateID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Role:           req.Role,
		InterviewDate:  req.InterviewDate,
		InterviewTime:  req.InterviewTime,
		ScheduledBy:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to schedule interview")
		}
		return
	}

	respond.Created(c, toResponse(sched))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "login required")
		return
	}

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list schedules")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, s := range items {
		resp = append(resp, toResponse(s))
	}
	respond.OK(c, resp)
}

func toResponse(s Schedule) gin.H {
	return gin.H{
		"id":             s.ID,
		"candidateId":    s.CandidateID,
		"candidateName":  s.CandidateName,
		"candidateEmail": s.CandidateEmail,
		"role":           s.Role,
		"interviewDate":  s.InterviewDate,
		"interviewTime":  s.InterviewTime,
		"scheduledBy":    s.ScheduledBy,
		"status":         s.Status,
		"createdAt":      s.CreatedAt,
	}
}
