package answers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/scoring"
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

// RegisterRoutes attaches answer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/answers", h.save)
	rg.GET("/answers/:mockId", h.list)
}

type saveRequest struct {
	MockIDRef        string                   `json:"mockIdRef"`
	Question         string                   `json:"question"`
	CorrectAns       string                   `json:"correctAns"`
	UserAns          string                   `json:"userAns"`
	Feedback         string                   `json:"feedback"`
	Rating           float64                  `json:"rating"`
	DetailedAnalysis scoring.DetailedAnalysis `json:"detailedAnalysis"`
	KeyPointsCovered []string                 `json:"keyPointsCovered"`
	MissingPoints    []string                 `json:"missingPoints"`
	Improvements     []string                 `json:"improvements"`
	Strengths        []string                 `json:"strengths"`
	UserEmail        string                   `json:"userEmail"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Svc.Save(c.Request.Context(), SaveInput{
		MockIDRef:        req.MockIDRef,
		Question:         req.Question,
		CorrectAns:       req.CorrectAns,
		UserAns:          req.UserAns,
		Feedback:         req.Feedback,
		Rating:           req.Rating,
		DetailedAnalysis: req.DetailedAnalysis,
		KeyPoints:        req.KeyPointsCovered,
		MissingPoints:    req.MissingPoints,
		Improvements:     req.Improvements,
		Strengths:        req.Strengths,
		UserEmail:        req.UserEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "You have already answered this question")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "failed to save answer")
		}
		return
	}

	c.Set("answerId", a.ID)
	respond.Created(c, toResponse(a))
}

func (h *Handler) list(c *gin.Context) {
	mockID := strings.TrimSpace(c.Param("mockId"))

	items, err := h.Svc.List(c.Request.Context(), mockID)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to list answers")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, a := range items {
		resp = append(resp, toResponse(a))
	}
	respond.OK(c, resp)
}

func toResponse(a Answer) gin.H {
	return gin.H{
		"id":               a.ID,
		"mockIdRef":        a.MockIDRef,
		"question":         a.Question,
		"correctAns":       a.CorrectAns,
		"userAns":          a.UserAns,
		"feedback":         a.Feedback,
		"rating":           a.Rating,
		"detailedAnalysis": a.DetailedAnalysis,
		"keyPointsCovered": a.KeyPoints,
		"missingPoints":    a.MissingPoints,
		"improvements":     a.Improvements,
		"strengths":        a.Strengths,
		"userEmail":        a.UserEmail,
		"createdAt":        a.CreatedAt.Format(time.RFC3339),
	}
}
