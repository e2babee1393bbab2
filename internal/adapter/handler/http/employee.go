package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
	"github.com/sm8ta/station_control_console/internal/core/services"
)

type EmployeeFormHandler struct {
	registry *services.FormRegistry
	logger   ports.LoggerPort
	metrics  ports.MetricsPort
}

type UpdateFormRequest struct {
	Updates []domain.FieldUpdate `json:"updates" binding:"required,min=1,dive"`
}

type ValidationResponse struct {
	Valid  bool                `json:"valid" example:"false"`
	Errors []domain.FieldError `json:"errors"`
	Fields map[string]string   `json:"fields"`
}

type CreatedEmployeeResponse struct {
	Employee    *domain.Employee `json:"employee"`
	AvatarColor string           `json:"avatarColor" example:"#210c00"`
}

func toValidationResponse(r domain.ValidationResult) ValidationResponse {
	errs := r.Errors
	if errs == nil {
		errs = []domain.FieldError{}
	}
	return ValidationResponse{
		Valid:  r.Valid(),
		Errors: errs,
		Fields: r.Map(),
	}
}

func NewEmployeeFormHandler(
	registry *services.FormRegistry,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *EmployeeFormHandler {
	return &EmployeeFormHandler{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// @Summary Open an employee form
// @Description Starts a new registration form session and loads the country list
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Success 201 {object} successResponse{data=services.FormView} "Form opened"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /employees/forms [post]
func (h *EmployeeFormHandler) OpenForm(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form := h.registry.Open(c.Request.Context())
	newSuccessResponse(c, http.StatusCreated, "Form opened", form.View())
}

// @Summary Get an employee form
// @Description Current draft, country list, loading flag and photo preview
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} successResponse{data=services.FormView} "Form found"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id} [get]
func (h *EmployeeFormHandler) GetForm(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}
	newSuccessResponse(c, http.StatusOK, "Form found", form.View())
}

// @Summary Update form fields
// @Description Dispatches field updates to the draft. All updates apply or none do.
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body UpdateFormRequest true "Field updates"
// @Success 200 {object} successResponse{data=services.FormView} "Form updated"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id} [patch]
func (h *EmployeeFormHandler) UpdateForm(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Failed JSON parse in form update", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := form.Dispatch(req.Updates...); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	newSuccessResponse(c, http.StatusOK, "Form updated", form.View())
}

// @Summary Select a profile photo
// @Description Accepts exactly one image of at most 3MB in the fotoPerfil part
// @Tags employees
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Form ID"
// @Param fotoPerfil formData file true "Profile photo"
// @Success 200 {object} successResponse{data=services.FormView} "Photo selected"
// @Failure 400 {object} errorResponse "Invalid upload"
// @Failure 422 {object} errorResponse "Photo rejected"
// @Router /employees/forms/{id}/photo [put]
func (h *EmployeeFormHandler) SelectPhoto(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid upload")
		return
	}

	headers := multipartForm.File[domain.FieldProfilePhoto]
	uploads := make([]services.PhotoUpload, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh, domain.MaxPhotoSize+1)
		if err != nil {
			h.logger.Error("Failed to read uploaded photo", map[string]interface{}{
				"error": err.Error(),
				"file":  fh.Filename,
			})
			newErrorResponse(c, http.StatusBadRequest, "Unable to read upload")
			return
		}
		uploads = append(uploads, services.PhotoUpload{FileName: fh.Filename, Data: data})
	}

	if err := form.SelectPhoto(uploads); err != nil {
		newErrorResponse(c, http.StatusUnprocessableEntity, services.PhotoMessage(err))
		return
	}
	newSuccessResponse(c, http.StatusOK, "Photo selected", form.View())
}

// @Summary Clear the profile photo
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} successResponse{data=services.FormView} "Photo cleared"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id}/photo [delete]
func (h *EmployeeFormHandler) ClearPhoto(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}
	form.ClearPhoto()
	newSuccessResponse(c, http.StatusOK, "Photo cleared", form.View())
}

// @Summary Validate the draft
// @Description Local validation only, nothing is sent upstream
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} successResponse{data=ValidationResponse} "Validation result"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id}/validation [get]
func (h *EmployeeFormHandler) Validate(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}
	newSuccessResponse(c, http.StatusOK, "Validation result", toValidationResponse(form.Validate()))
}

// @Summary Submit the draft
// @Description Validates and creates the employee on the station-control API
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 201 {object} successResponse{data=CreatedEmployeeResponse} "Employee created"
// @Failure 404 {object} errorResponse "Form session not found"
// @Failure 409 {object} errorResponse "Submission already in progress"
// @Failure 422 {object} errorResponse{data=ValidationResponse} "Draft is not valid"
// @Failure 502 {object} errorResponse "Station API rejected the employee"
// @Router /employees/forms/{id}/submit [post]
func (h *EmployeeFormHandler) Submit(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}

	employee, result, err := form.Submit(c.Request.Context())
	if err != nil {
		var apiErr *domain.APIError
		switch {
		case errors.Is(err, services.ErrSubmitInProgress):
			newErrorResponse(c, http.StatusConflict, "Submission already in progress")
		case errors.Is(err, services.ErrInvalidDraft):
			newFailResponse(c, http.StatusUnprocessableEntity, "Draft is not valid", toValidationResponse(result))
		case errors.As(err, &apiErr) && apiErr.Message != "":
			newErrorResponse(c, http.StatusBadGateway, apiErr.Message)
		default:
			newErrorResponse(c, http.StatusBadGateway, "Failed to create employee")
		}
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Employee created", CreatedEmployeeResponse{
		Employee:    employee,
		AvatarColor: domain.AvatarColor(employee.Name),
	})
}

// @Summary Drain form notifications
// @Description Returns the notifications shown since the last call, oldest first
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} successResponse{data=[]domain.Notification} "Notifications"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id}/notifications [get]
func (h *EmployeeFormHandler) Notifications(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	form, ok := lookupForm(c, h.registry)
	if !ok {
		return
	}
	newSuccessResponse(c, http.StatusOK, "Notifications", form.Notifications())
}

// @Summary Discard an employee form
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} successResponse "Form discarded"
// @Failure 404 {object} errorResponse "Form session not found"
// @Router /employees/forms/{id} [delete]
func (h *EmployeeFormHandler) DiscardForm(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.registry.Discard(c.Param("id")); err != nil {
		newErrorResponse(c, http.StatusNotFound, "Form session not found")
		return
	}
	newSuccessResponse(c, http.StatusOK, "Form discarded", nil)
}

// readUpload reads at most limit bytes of an uploaded file.
func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}
