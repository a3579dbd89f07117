package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/config"
	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
	"github.com/citamed/agenda-slots-service/internal/core/ports/in"
)

type SlotEngineController struct {
	useCase in.SlotEngineUseCase
	cfg     *config.Config
}

func NewSlotEngineController(useCase in.SlotEngineUseCase, cfg *config.Config) *SlotEngineController {
	return &SlotEngineController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *SlotEngineController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/doctors/:doctorId/slots", c.getDaySlots)
		api.GET("/doctors/:doctorId/availability", c.getRangeAvailability)
		api.POST("/doctors/:doctorId/appointments", c.bookAppointment)
		api.PATCH("/appointments/:appointmentId/status", c.changeAppointmentStatus)
	}
}

func (c *SlotEngineController) getDaySlots(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}

	date, err := json_types.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slots, err := c.useCase.GetDaySlots(ctx.Request.Context(), doctorID, date)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	})
}

func (c *SlotEngineController) getRangeAvailability(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}

	from, err := json_types.ParseDate(ctx.Query("from"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format, expected YYYY-MM-DD"})
		return
	}

	to, err := json_types.ParseDate(ctx.Query("to"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format, expected YYYY-MM-DD"})
		return
	}

	viewMode := domain.ViewMode(ctx.DefaultQuery("view", string(domain.ViewModeWeek)))
	if !viewMode.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view mode, expected day, week or month"})
		return
	}

	result, err := c.useCase.GetRangeAvailability(ctx.Request.Context(), doctorID, from, to, viewMode)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId":     doctorID,
		"availability": result,
	})
}

type BookAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"startTime" binding:"required"`
}

func (c *SlotEngineController) bookAppointment(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}

	var req BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := json_types.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	startTime, err := json_types.ParseClockTime(req.StartTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time format, expected HH:MM"})
		return
	}

	appointment, err := c.useCase.BookAppointment(ctx.Request.Context(), domain.CreateAppointmentDTO{
		DoctorID:  doctorID,
		PatientID: req.PatientID,
		Date:      date,
		StartTime: startTime,
	})
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, appointmentResponse(appointment))
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (c *SlotEngineController) changeAppointmentStatus(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("appointmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	var req ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.useCase.ChangeAppointmentStatus(ctx.Request.Context(), appointmentID, req.Status)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointmentResponse(appointment))
}

// appointmentResponse maps the persisted status to the presentation
// vocabulary at the boundary.
func appointmentResponse(appointment *domain.Appointment) gin.H {
	presentation, err := domain.MapStatus(string(appointment.Status), domain.StatusToPresentation)
	if err != nil {
		// Unknown stored status is a bug signal; surface the raw token
		// instead of hiding it.
		presentation = string(appointment.Status)
	}

	return gin.H{
		"id":        appointment.ID,
		"doctorId":  appointment.DoctorID,
		"patientId": appointment.PatientID,
		"date":      appointment.Date,
		"startTime": appointment.StartTime,
		"status":    presentation,
	}
}

func (c *SlotEngineController) renderError(ctx *gin.Context, err error) {
	var unknownStatus *domain.UnknownStatusError
	var invalidRule *domain.InvalidRuleError

	switch {
	case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, domain.ErrSlotUnavailable):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unknownStatus):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &invalidRule):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *SlotEngineController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
