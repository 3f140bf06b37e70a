package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-tracker-backend/internal/response"
	"equipment-tracker-backend/internal/validate"
)

// ListEquipment handles GET /equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.List(c, items, len(items))
}

// CreateEquipment handles POST /equipment.
func (h *Handler) CreateEquipment(c *gin.Context) {
	body, err := validate.DecodeBody(c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}

	fields, errs := h.validator.Create(body)
	if errs != nil {
		h.fail(c, response.Validation(errs))
		return
	}

	e, err := h.service.Create(c.Request.Context(), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, e, "Equipment created successfully")
}

// UpdateEquipment handles PUT /equipment/:id.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	body, err := validate.DecodeBody(c.Request.Body)
	if err != nil {
		h.fail(c, err)
		return
	}

	patch, errs := h.validator.Update(body)
	if errs != nil {
		h.fail(c, response.Validation(errs))
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, e, "Equipment updated successfully")
}

// DeleteEquipment handles DELETE /equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	e, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, e, "Equipment deleted successfully")
}

// Root is the liveness message.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Equipment Tracker API is running!"})
}

// Health reports whether the record store is reachable.
func (h *Handler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound answers every unmatched route.
func (h *Handler) NotFound(c *gin.Context) {
	h.fail(c, response.NotFound("Can't find "+c.Request.URL.Path+" on this server!"))
}
