package technicien

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gmao-ics/techniciens-api/internal/middleware"
	"github.com/gmao-ics/techniciens-api/internal/model"
	"github.com/gmao-ics/techniciens-api/internal/service/technicien"
)

type Handler struct {
	svc technicien.Service
}

func NewHandler(svc technicien.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	techniciens := r.Group("/techniciens")
	techniciens.Use(auth.Authenticate())
	{
		techniciens.GET("", h.List)
		techniciens.POST("", auth.Authorize(middleware.OpTechnicienCreate), h.Create)

		byID := techniciens.Group("/:id")
		byID.Use(middleware.ValidateIDParam())
		{
			byID.GET("", h.Get)
			byID.PUT("", auth.Authorize(middleware.OpTechnicienUpdate), h.Update)
			byID.DELETE("", auth.Authorize(middleware.OpTechnicienDelete), h.Delete)
			byID.GET("/availability", h.CheckAvailability)
			byID.POST("/assign", auth.Authorize(middleware.OpTechnicienAssign), h.Assign)
			byID.GET("/interventions", h.ListInterventions)
			byID.GET("/stats", h.Stats)
		}
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTechnicienRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "technicien created successfully",
		"data":    t,
	})
}

func (h *Handler) List(c *gin.Context) {
	var filters model.TechnicienFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.Error(err)
		return
	}

	techniciens, err := h.svc.List(c.Request.Context(), &filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "techniciens retrieved",
		"data":    techniciens,
		"count":   len(techniciens),
	})
}

func (h *Handler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), middleware.TechnicienID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "technicien found",
		"data":    t,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateTechnicienRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), middleware.TechnicienID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "technicien updated successfully",
		"data":    t,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.TechnicienID(c)); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	date, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		date, err = time.Parse("2006-01-02", rawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
			return
		}
	}

	id := middleware.TechnicienID(c)
	available, err := h.svc.CheckAvailability(c.Request.Context(), id, date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"technicien_id": id,
		"date":          rawDate,
		"available":     available,
	})
}

func (h *Handler) Assign(c *gin.Context) {
	var req model.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	id := middleware.TechnicienID(c)
	if err := h.svc.Assign(c.Request.Context(), id, req.InterventionID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "technicien assigned successfully",
		"technicien_id":   id,
		"intervention_id": req.InterventionID,
	})
}

func (h *Handler) ListInterventions(c *gin.Context) {
	id := middleware.TechnicienID(c)
	assignments, err := h.svc.ListAssignments(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "technicien interventions retrieved",
		"technicien_id": id,
		"data":          assignments,
	})
}

func (h *Handler) Stats(c *gin.Context) {
	id := middleware.TechnicienID(c)
	stats, err := h.svc.Stats(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "technicien stats retrieved",
		"technicien_id": id,
		"data":          stats,
	})
}
