package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelworks/hotel-api/internal/handler"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/service/room"
	"github.com/hotelworks/hotel-api/pkg/validator"
)

type Handler struct {
	service  *room.Service
	validate *validator.Validator
}

func NewHandler(service *room.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/rooms")
	{
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
		rooms.GET("/:id/amenities", h.ListRoomAmenities)
	}

	types := r.Group("/room-types")
	{
		types.POST("", h.CreateRoomType)
		types.GET("", h.ListRoomTypes)
		types.GET("/:id", h.GetRoomType)
		types.PUT("/:id", h.UpdateRoomType)
		types.DELETE("/:id", h.DeleteRoomType)
	}
}

func (h *Handler) CreateRoom(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateRoom(c.Request.Context(), &req, &actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	rm, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rm))
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rooms))
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	rm, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rm.RoomNumber = req.RoomNumber
	rm.FloorID = req.FloorID
	rm.RoomTypeID = req.RoomTypeID
	rm.PricePerNight = req.PricePerNight

	if err := h.service.UpdateRoom(c.Request.Context(), rm); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rm))
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"detail": "room deleted"}))
}

func (h *Handler) ListRoomAmenities(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	amenities, err := h.service.ListRoomAmenities(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(amenities))
}

func (h *Handler) CreateRoomType(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateRoomType(c.Request.Context(), &req, &actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetRoomType(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	rt, err := h.service.GetRoomType(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rt))
}

func (h *Handler) ListRoomTypes(c *gin.Context) {
	types, err := h.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(types))
}

func (h *Handler) UpdateRoomType(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	rt, err := h.service.GetRoomType(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var req model.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rt.Name = req.Name
	rt.RoomCategory = req.RoomCategory
	rt.AreaInMeters = req.AreaInMeters
	rt.AreaInFeet = req.AreaInFeet
	rt.MaxGuests = req.MaxGuests
	rt.Bed = req.Bed
	rt.ViewID = req.ViewID
	rt.PricePerNight = req.PricePerNight

	if err := h.service.UpdateRoomType(c.Request.Context(), rt); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rt))
}

func (h *Handler) DeleteRoomType(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoomType(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"detail": "room type deleted"}))
}
