package shift

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelworks/hotel-api/internal/handler"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/service/shift"
	"github.com/hotelworks/hotel-api/pkg/validator"
)

type Handler struct {
	service  *shift.Service
	validate *validator.Validator
}

func NewHandler(service *shift.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	shifts := r.Group("/shifts")
	{
		shifts.POST("", h.CreateShift)
		shifts.GET("", h.ListShifts)
	}

	assignments := r.Group("/shift-assignments")
	{
		assignments.POST("", h.CreateAssignment)
		assignments.GET("", h.ListAssignments)
		assignments.GET("/mine", h.ListOwnAssignments)
		assignments.GET("/:id", h.GetAssignment)
		assignments.POST("/:id/status", h.UpdateStatus)
		assignments.DELETE("", h.ClearAssignments)
		assignments.POST("/notes", h.CreateNote)
		assignments.GET("/:id/notes", h.ListNotes)
	}
}

func (h *Handler) CreateShift(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateShift(c.Request.Context(), &req, &actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListShifts(c *gin.Context) {
	shifts, err := h.service.ListShifts(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(shifts))
}

func (h *Handler) CreateAssignment(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateShiftAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assignment, err := h.service.CreateAssignment(c.Request.Context(), &req, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(assignment))
}

func (h *Handler) GetAssignment(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.service.GetAssignment(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignment))
}

func (h *Handler) ListAssignments(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	filters := &model.ShiftAssignmentFilters{
		ShiftName:             c.Query("shift_name"),
		ExcludeInactiveShifts: c.Query("exclude_inactive") == "true",
		DepartmentID:          actor.DepartmentID,
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(model.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		filters.Date = &date
	}

	assignments, err := h.service.ListAssignments(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignments))
}

func (h *Handler) ListOwnAssignments(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	assignments, err := h.service.ListAssignmentsForProfile(c.Request.Context(), actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignments))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateShiftAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assignment, err := h.service.UpdateAssignmentStatus(c.Request.Context(), id, req.Status, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignment))
}

func (h *Handler) ClearAssignments(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	rawDate := c.Query("date")
	rawShift := c.Query("shift_id")
	if rawDate == "" || rawShift == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date and shift_id are required"))
		return
	}

	date, err := time.Parse(model.DateOnly, rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}
	shiftID, err := uuid.Parse(rawShift)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid shift_id"))
		return
	}

	removed, err := h.service.ClearAssignments(c.Request.Context(), date, shiftID, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"removed": removed}))
}

func (h *Handler) CreateNote(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateShiftNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), &req, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(note))
}

func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	notes, err := h.service.ListNotes(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}
