package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/report"
	"github.com/watan-hr/fingerprint-attendance/internal/handler/http/response"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/export"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler interface {
	Individual(w http.ResponseWriter, r *http.Request)
	General(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	organization  string
}

func NewReportHandler(reportService report.ReportService, organization string) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		organization:  organization,
	}
}

// Individual implements ReportHandler.
func (h *reportHandlerImpl) Individual(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID, err := strconv.Atoi(q.Get("employee_id"))
	if err != nil {
		response.BadRequest(w, "employee_id must be a number", nil)
		return
	}
	req := report.IndividualReportRequest{
		EmployeeID: employeeID,
		From:       q.Get("from"),
		To:         q.Get("to"),
		Scope:      q.Get("scope"),
	}

	rep, err := h.reportService.Individual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if format == report.FormatJSON {
		response.Success(w, report.NewIndividualReportResponse(rep))
		return
	}
	name := fmt.Sprintf("attendance_%d_%s_%s", rep.EmployeeID, req.From, req.To)
	h.writeExport(w, format, name, export.IndividualTable(rep))
}

// General implements ReportHandler.
func (h *reportHandlerImpl) General(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := report.GeneralReportRequest{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Scope: q.Get("scope"),
	}

	rep, err := h.reportService.General(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if format == report.FormatJSON {
		response.Success(w, report.NewGeneralReportResponse(rep))
		return
	}
	name := fmt.Sprintf("attendance_general_%s_%s", req.From, req.To)
	h.writeExport(w, format, name, export.GeneralTable(rep))
}

func (h *reportHandlerImpl) writeExport(w http.ResponseWriter, format report.Format, name string, table export.Table) {
	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch format {
	case report.FormatPDF:
		contentType = contentTypePDF
		err = export.PDF(&buf, table, export.Options{
			Organization: h.organization,
			GeneratedAt:  time.Now(),
		})
	case report.FormatXLSX:
		contentType = contentTypeXLSX
		err = export.XLSX(&buf, table)
	}
	if err != nil {
		slog.Error("Report export failed", "format", format, "error", err)
		response.InternalServerError(w, "Failed to render report")
		return
	}

	response.Attachment(w, contentType, name+"."+string(format), buf.Bytes())
}
