package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
	"github.com/cmlabs-hris/overtime-analyzer/internal/handler/http/response"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const defaultTopCount = 10

type OvertimeHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	MonthSummary(w http.ResponseWriter, r *http.Request)
	DailySummary(w http.ResponseWriter, r *http.Request)
	TopEmployees(w http.ResponseWriter, r *http.Request)
	EmployeeDetail(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.Service
	maxUploadBytes  int64
}

func NewOvertimeHandler(overtimeService overtime.Service, maxUploadBytes int64) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Upload implements OvertimeHandler.
func (h *overtimeHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.HandleError(w, overtime.ErrNoFileProvided)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := overtime.IngestRequest{
		Filename: fileHeader.Filename,
		Reader:   file,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.IngestWorkbook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File processed successfully", result)
}

// EmployeeSummary implements OvertimeHandler.
func (h *overtimeHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.SummaryByEmployee(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthSummary implements OvertimeHandler.
func (h *overtimeHandlerImpl) MonthSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.SummaryByMonth(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailySummary implements OvertimeHandler.
func (h *overtimeHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.DailyTotals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TopEmployees implements OvertimeHandler.
func (h *overtimeHandlerImpl) TopEmployees(w http.ResponseWriter, r *http.Request) {
	n := defaultTopCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	result, err := h.overtimeService.TopOvertimeEmployees(r.Context(), n)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeDetail implements OvertimeHandler.
func (h *overtimeHandlerImpl) EmployeeDetail(w http.ResponseWriter, r *http.Request) {
	pinParam := chi.URLParam(r, "pinCode")
	if !validator.IsNumeric(pinParam) {
		response.BadRequest(w, "pin code must be numeric", nil)
		return
	}
	pinCode, err := strconv.Atoi(pinParam)
	if err != nil {
		response.BadRequest(w, "pin code must be numeric", nil)
		return
	}

	// Pin 0 is never a real employee; it selects all of them. Real pins
	// start at 1, including the fallback pin for unreadable identifiers.
	filter := overtime.DetailFilter{}
	if pinCode != 0 {
		filter.PinCode = &pinCode
	}
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}

	result, err := h.overtimeService.EmployeeDetails(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements OvertimeHandler.
func (h *overtimeHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.OverallStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements OvertimeHandler.
func (h *overtimeHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.overtimeService.ExportSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	if _, err := w.Write(export.Content); err != nil {
		slog.Error("Failed to stream export", "error", err)
	}
}

// Reset implements OvertimeHandler.
func (h *overtimeHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.ResetDataset(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dataset cleared", nil)
}
