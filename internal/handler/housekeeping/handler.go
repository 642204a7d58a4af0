package housekeeping

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelworks/hotel-api/internal/handler"
	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/service/housekeeping"
	"github.com/hotelworks/hotel-api/pkg/validator"
)

type Handler struct {
	service  *housekeeping.Service
	validate *validator.Validator
}

func NewHandler(service *housekeeping.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/housekeeping/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.POST("/:id/status", h.ChangeStatus)
		tasks.GET("/:id/history", h.ListStatusHistory)
	}

	r.GET("/housekeeping/states", h.ListStates)
	r.GET("/housekeeping/priorities", h.ListPriorities)
	r.GET("/housekeeping/assigned-staff", h.ListAssignedStaff)
}

func (h *Handler) CreateTask(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), &req, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(task))
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(task))
}

func (h *Handler) ListTasks(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	filters := &model.TaskFilters{
		EmployeeName:  c.Query("employee_name"),
		ShiftName:     c.Query("shift_name"),
		RoomNumber:    c.Query("room_number"),
		CurrentStatus: c.Query("status"),
		PriorityName:  c.Query("priority"),
	}

	if raw := c.Query("member_shift_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid member_shift_id"))
			return
		}
		filters.MemberShiftID = &id
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(model.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		filters.AssignmentDate = &date
	}

	if c.Query("mine") == "true" {
		filters.AssignedToID = &actor.ID
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tasks))
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	actor, ok := handler.ActorProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var req model.ChangeTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	task, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status, actor.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(task))
}

func (h *Handler) ListStatusHistory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	records, err := h.service.ListStatusHistory(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) ListStates(c *gin.Context) {
	states, err := h.service.ListStates(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(states))
}

func (h *Handler) ListPriorities(c *gin.Context) {
	priorities, err := h.service.ListPriorities(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(priorities))
}

func (h *Handler) ListAssignedStaff(c *gin.Context) {
	rawRoom := c.Query("room_id")
	rawDate := c.Query("date")
	if rawRoom == "" || rawDate == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("room_id and date are required"))
		return
	}

	roomID, err := uuid.Parse(rawRoom)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid room_id"))
		return
	}
	date, err := time.Parse(model.DateOnly, rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}

	var shiftID *uuid.UUID
	if raw := c.Query("shift_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid shift_id"))
			return
		}
		shiftID = &id
	}

	staff, err := h.service.ListAssignedStaff(c.Request.Context(), roomID, date, shiftID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}
