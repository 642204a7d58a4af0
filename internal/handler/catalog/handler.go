package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelworks/hotel-api/internal/handler"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/service/catalog"
	"github.com/hotelworks/hotel-api/pkg/validator"
)

// routeTables maps URL path segments to catalog tables.
var routeTables = map[string]string{
	"floors":          "floors",
	"views":           "views",
	"amenities":       "amenities",
	"bed-types":       "bed_types",
	"genders":         "genders",
	"priorities":      "priorities",
	"name-titles":     "name_titles",
	"countries":       "countries",
	"room-categories": "room_categories",
}

type Handler struct {
	service  *catalog.Service
	validate *validator.Validator
}

func NewHandler(service *catalog.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	catalogs := r.Group("/catalogs/:catalog")
	{
		catalogs.POST("", h.Create)
		catalogs.GET("", h.List)
		catalogs.GET("/:id", h.Get)
		catalogs.PUT("/:id", h.Update)
		catalogs.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) table(c *gin.Context) (string, bool) {
	table, ok := routeTables[c.Param("catalog")]
	if !ok {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("unknown catalog"))
		return "", false
	}
	return table, true
}

func (h *Handler) Create(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.service.Create(c.Request.Context(), table, &req, &actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) Get(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.Get(c.Request.Context(), table, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entry))
}

func (h *Handler) List(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), table)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) Update(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.CreateCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.service.Get(c.Request.Context(), table, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	entry.Name = req.Name

	if err := h.service.Update(c.Request.Context(), table, entry); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entry))
}

func (h *Handler) Delete(c *gin.Context) {
	table, ok := h.table(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), table, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"detail": "catalog entry deleted"}))
}
