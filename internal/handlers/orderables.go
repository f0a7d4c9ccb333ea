package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/models"
	"infinite-flow-backend/internal/ordering"
	"infinite-flow-backend/internal/supabase"
)

// OrderableHandler serves one of the admin-orderable lookup tables.
// Allergies and dietary preferences share the exact same shape and
// operations, so they share one handler bound to different store funcs.
// Routes are registered per table; swagger coverage lives on the
// registration side in docs.
type OrderableHandler struct {
	label  string
	create func(name string) (models.OrderableItemResponse, error)
	list   func() ([]models.OrderableItemResponse, error)
	update func(id uuid.UUID, name *string, isActive *bool) (models.OrderableItemResponse, error)
	remove func(id uuid.UUID) error
	order  *ordering.List
}

// orderableScope feeds the reorder component from the same list func the
// handler serves, so the ordering snapshot and the API view agree.
type orderableScope struct {
	list        func() ([]models.OrderableItemResponse, error)
	writeOrders func(orders map[uuid.UUID]int) error
}

func (s orderableScope) ListItems(ctx context.Context) ([]ordering.Item, error) {
	rows, err := s.list()
	if err != nil {
		return nil, err
	}
	items := make([]ordering.Item, len(rows))
	for i, r := range rows {
		items[i] = ordering.Item{ID: r.ID, Name: r.Name, OrderNumber: r.OrderNumber}
	}
	return items, nil
}

func (s orderableScope) UpdateOrder(ctx context.Context, updates []ordering.Update) error {
	orders := make(map[uuid.UUID]int, len(updates))
	for _, u := range updates {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return err
		}
		orders[id] = u.OrderNumber
	}
	return s.writeOrders(orders)
}

func allergyItem(a models.Allergy) models.OrderableItemResponse {
	out := models.OrderableItemResponse{ID: a.ID.String(), Name: a.Name, IsActive: a.IsActive}
	if a.OrderNumber.Valid {
		n := int(a.OrderNumber.Int64)
		out.OrderNumber = &n
	}
	return out
}

func preferenceItem(p models.DietaryPreference) models.OrderableItemResponse {
	out := models.OrderableItemResponse{ID: p.ID.String(), Name: p.Name, IsActive: p.IsActive}
	if p.OrderNumber.Valid {
		n := int(p.OrderNumber.Int64)
		out.OrderNumber = &n
	}
	return out
}

func NewAllergiesHandler(db *supabase.DatabaseClient) *OrderableHandler {
	list := func() ([]models.OrderableItemResponse, error) {
		rows, err := db.ListAllergies()
		if err != nil {
			return nil, err
		}
		out := make([]models.OrderableItemResponse, len(rows))
		for i, a := range rows {
			out[i] = allergyItem(a)
		}
		return out, nil
	}
	return &OrderableHandler{
		label: "allergy",
		list:  list,
		create: func(name string) (models.OrderableItemResponse, error) {
			a, err := db.CreateAllergy(name)
			if err != nil {
				return models.OrderableItemResponse{}, err
			}
			return allergyItem(*a), nil
		},
		update: func(id uuid.UUID, name *string, isActive *bool) (models.OrderableItemResponse, error) {
			a, err := db.UpdateAllergy(id, name, isActive)
			if err != nil {
				return models.OrderableItemResponse{}, err
			}
			return allergyItem(*a), nil
		},
		remove: db.DeleteAllergy,
		order:  ordering.NewList(orderableScope{list: list, writeOrders: db.UpdateAllergyOrders}),
	}
}

func NewDietaryPreferencesHandler(db *supabase.DatabaseClient) *OrderableHandler {
	list := func() ([]models.OrderableItemResponse, error) {
		rows, err := db.ListDietaryPreferences()
		if err != nil {
			return nil, err
		}
		out := make([]models.OrderableItemResponse, len(rows))
		for i, p := range rows {
			out[i] = preferenceItem(p)
		}
		return out, nil
	}
	return &OrderableHandler{
		label: "dietary preference",
		list:  list,
		create: func(name string) (models.OrderableItemResponse, error) {
			p, err := db.CreateDietaryPreference(name)
			if err != nil {
				return models.OrderableItemResponse{}, err
			}
			return preferenceItem(*p), nil
		},
		update: func(id uuid.UUID, name *string, isActive *bool) (models.OrderableItemResponse, error) {
			p, err := db.UpdateDietaryPreference(id, name, isActive)
			if err != nil {
				return models.OrderableItemResponse{}, err
			}
			return preferenceItem(*p), nil
		},
		remove: db.DeleteDietaryPreference,
		order:  ordering.NewList(orderableScope{list: list, writeOrders: db.UpdateDietaryPreferenceOrders}),
	}
}

func (h *OrderableHandler) Create(c *gin.Context) {
	var req models.CreateNamedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	item, err := h.create(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create " + h.label, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *OrderableHandler) List(c *gin.Context) {
	items, err := h.list()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list items", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.OrderableListResponse{Items: items})
}

func (h *OrderableHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	item, err := h.update(id, req.Name, req.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: h.label + " not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *OrderableHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.remove(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: h.label + " not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.label + " deleted successfully"})
}

// Reorder moves one row and rewrites order_number for the whole table as a
// dense zero-based sequence. Only one reorder per table runs at a time;
// concurrent calls get a conflict and should retry with fresh indices.
func (h *OrderableHandler) Reorder(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	items, err := h.order.Reorder(c.Request.Context(), req.ItemID, req.FromIndex, req.ToIndex)
	respondReorder(c, items, err)
}
