package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modgate/modgate/internal/submission/service"
)

// RegisterSubmissionRoutes wires the moderation API. overrideAuth guards the
// moderator override endpoint; pass none to leave it open (dev/test only).
func RegisterSubmissionRoutes(r *gin.Engine, svc service.Service, overrideAuth ...gin.HandlerFunc) {
	r.GET("/api/submissions", func(c *gin.Context) {
		// ?signature= resolves a single record by its classifier signature
		if sig := c.Query("signature"); sig != "" {
			rec, err := svc.GetBySignature(c.Request.Context(), sig)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusOK, rec)
			return
		}
		list, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]map[string]any, 0, len(list))
		for _, s := range list {
			out = append(out, map[string]any{"id": s.ID, "allow": s.Allow, "signature": s.Signature, "updatedAt": s.UpdatedAt})
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/api/submissions", func(c *gin.Context) {
		var req struct {
			Data map[string]string `json:"data" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rec, err := svc.Submit(c.Request.Context(), req.Data)
		if err != nil {
			if errors.Is(err, service.ErrRemote) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "classification service unavailable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": rec.ID, "allow": rec.Allow, "signature": rec.Signature})
	})

	r.GET("/api/submissions/:id", func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	override := append([]gin.HandlerFunc{}, overrideAuth...)
	override = append(override, func(c *gin.Context) {
		var req struct {
			Allow *bool `json:"allow" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rec, err := svc.Override(c.Request.Context(), c.Param("id"), *req.Allow)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			case errors.Is(err, service.ErrRemote):
				c.JSON(http.StatusBadGateway, gin.H{"error": "classification service unavailable"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": rec.ID, "allow": rec.Allow})
	})
	r.PUT("/api/submissions/:id/allow", override...)

	r.DELETE("/api/submissions/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
