package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
)

type EquipmentStore interface {
	CreateEquipment(name, description string) (*models.Equipment, error)
	ListEquipment() ([]models.Equipment, error)
	DeleteEquipment(id uuid.UUID) error
}

type EquipmentHandler struct {
	db EquipmentStore
}

func NewEquipmentHandler(db EquipmentStore) *EquipmentHandler {
	return &EquipmentHandler{db: db}
}

func equipmentResponse(e models.Equipment) models.NamedItemResponse {
	resp := models.NamedItemResponse{
		ID:        e.ID.String(),
		Name:      e.Name,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
	if e.Description.Valid {
		resp.Description = e.Description.String
	}
	return resp
}

// CreateEquipment godoc
// @Summary     Create an equipment entry
// @Tags        equipment
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateNamedItemRequest true "Equipment definition"
// @Success     200 {object} models.NamedItemResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /admin/equipment [post]
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req models.CreateNamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	equipment, err := h.db.CreateEquipment(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create equipment", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, equipmentResponse(*equipment))
}

// ListEquipment godoc
// @Summary     List equipment
// @Tags        equipment
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.NamedItemResponse
// @Router      /admin/equipment [get]
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	equipment, err := h.db.ListEquipment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list equipment", Message: err.Error()})
		return
	}

	out := make([]models.NamedItemResponse, len(equipment))
	for i, e := range equipment {
		out[i] = equipmentResponse(e)
	}
	c.JSON(http.StatusOK, out)
}

// DeleteEquipment godoc
// @Summary     Delete an equipment entry
// @Tags        equipment
// @Produce     json
// @Security    Bearer
// @Param       equipment_id path string true "Equipment ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/equipment/{equipment_id} [delete]
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	equipmentID, ok := pathUUID(c, "equipment_id")
	if !ok {
		return
	}

	if err := h.db.DeleteEquipment(equipmentID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "equipment not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "equipment deleted successfully"})
}
