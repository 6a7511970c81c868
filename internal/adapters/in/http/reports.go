package http

import (
	"net/http"

	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const defaultReportsLimit = 20

// GenerateReport handles POST /api/v1/reports. The generation is recorded in
// the command log so that it can be undone and redone.
func (s *Server) GenerateReport(c echo.Context) error {
	var body generateReportBody
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	localityID, err := kernel.UUIDFromString(body.LocalityID)
	if err != nil {
		return err
	}
	managerID, err := kernel.UUIDFromString(body.ManagerID)
	if err != nil {
		return err
	}

	cmd, err := s.reports.Generator.NewGenerateReportCommand(
		localityID, managerID, body.Kind, body.PeriodStart, body.PeriodEnd)
	if err != nil {
		return err
	}

	s.reportsMu.Lock()
	defer s.reportsMu.Unlock()

	result, err := s.reports.Invoker.Execute(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := commandLogResponse{Result: result, Cursor: s.reports.Invoker.Cursor()}
	if generated := cmd.Report(); generated != nil {
		r := newReportResponse(generated)
		response.Report = &r
	}

	return c.JSON(http.StatusCreated, response)
}

// UndoReport handles POST /api/v1/reports/undo.
func (s *Server) UndoReport(c echo.Context) error {
	s.reportsMu.Lock()
	defer s.reportsMu.Unlock()

	result, err := s.reports.Invoker.Undo(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandLogResponse{Result: result, Cursor: s.reports.Invoker.Cursor()})
}

// RedoReport handles POST /api/v1/reports/redo.
func (s *Server) RedoReport(c echo.Context) error {
	s.reportsMu.Lock()
	defer s.reportsMu.Unlock()

	result, err := s.reports.Invoker.Redo(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, commandLogResponse{Result: result, Cursor: s.reports.Invoker.Cursor()})
}

// ReportHistory handles GET /api/v1/reports/history.
func (s *Server) ReportHistory(c echo.Context) error {
	s.reportsMu.Lock()
	defer s.reportsMu.Unlock()

	return c.JSON(http.StatusOK, newHistoryResponse(s.reports.Invoker))
}

// GetLocalityReports handles GET /api/v1/localities/:id/reports?limit=.
func (s *Server) GetLocalityReports(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	limit := defaultReportsLimit
	if err = echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return err
	}

	found, err := s.reports.Reader.ByLocality(c.Request().Context(), id, limit)
	if err != nil {
		return err
	}

	response := make([]reportResponse, len(found))
	for i, r := range found {
		response[i] = newReportResponse(r)
	}

	return c.JSON(http.StatusOK, response)
}

// GetReport handles GET /api/v1/reports/:id.
func (s *Server) GetReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	found, err := s.reports.Reader.ByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newReportResponse(found))
}
