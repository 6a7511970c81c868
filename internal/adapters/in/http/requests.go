package http

import (
	"fmt"
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var body createRequestBody
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	requesterID, err := kernel.UUIDFromString(body.RequesterID)
	if err != nil {
		return err
	}
	category, err := request.CategoryFromString(body.Category)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), requesterID, category, body.Quantity, body.Description)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newRequestResponse(created))
}

// GetRequest handles GET /api/v1/requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetRequestQuery(id)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRequestReadResponse(found))
}

// GetRequests handles GET /api/v1/requests?status=&requesterId=&limit=.
func (s *Server) GetRequests(c echo.Context) error {
	var (
		rawStatus, rawRequester string
		limit                   int
	)
	if err := echo.QueryParamsBinder(c).
		String("status", &rawStatus).
		String("requesterId", &rawRequester).
		Int("limit", &limit).
		BindError(); err != nil {
		return err
	}

	var status *request.Status
	if rawStatus != "" {
		parsed, err := request.StatusFromString(rawStatus)
		if err != nil {
			return err
		}
		status = &parsed
	}
	var requesterID *kernel.UUID
	if rawRequester != "" {
		parsed, err := kernel.UUIDFromString(rawRequester)
		if err != nil {
			return err
		}
		requesterID = &parsed
	}

	query, err := queries.NewGetRequestsQuery(status, requesterID, limit)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]requestResponse, len(found))
	for i, r := range found {
		response[i] = newRequestReadResponse(r)
	}

	return c.JSON(http.StatusOK, response)
}

// ChangeRequestStatus handles PUT /api/v1/requests/:id/status.
func (s *Server) ChangeRequestStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var body changeStatusBody
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	action, err := request.ActionFromString(body.Action)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeRequestStatusCommand(id, action, body.Notes)
	if err != nil {
		return err
	}

	changed, err := s.handlers.ChangeRequestStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRequestResponse(changed))
}

// AssignRequest handles POST /api/v1/requests/:id/assignment. Without an
// explicit localityId the named strategy picks the locality.
func (s *Server) AssignRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var body assignBody
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	advisorID, err := kernel.UUIDFromString(body.AdvisorID)
	if err != nil {
		return err
	}

	var localityID kernel.UUID
	if body.LocalityID != "" {
		localityID, err = kernel.UUIDFromString(body.LocalityID)
	} else {
		localityID, err = s.pickLocality(c, id, body.Strategy, body.ProximityKeys)
	}
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignRequestCommand(id, localityID, advisorID, body.Notes)
	if err != nil {
		return err
	}

	result, err := s.handlers.AssignRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newAssignmentResponse(result))
}

// pickLocality ranks active localities for the request's quantity and returns
// the best one.
func (s *Server) pickLocality(
	c echo.Context,
	requestID kernel.UUID,
	strategy string,
	rawKeys map[string]float64,
) (kernel.UUID, error) {
	ctx := c.Request().Context()

	keys, err := parseProximityKeys(rawKeys)
	if err != nil {
		return kernel.UUID{}, err
	}

	getQuery, err := queries.NewGetRequestQuery(requestID)
	if err != nil {
		return kernel.UUID{}, err
	}
	found, err := s.handlers.GetRequest.Handle(ctx, getQuery)
	if err != nil {
		return kernel.UUID{}, err
	}

	selectQuery, err := queries.NewSelectCandidatesQuery(strategy, found.Quantity, keys)
	if err != nil {
		return kernel.UUID{}, err
	}
	candidates, err := s.handlers.SelectCandidates.Handle(ctx, selectQuery)
	if err != nil {
		return kernel.UUID{}, err
	}
	if len(candidates) == 0 {
		return kernel.UUID{}, fmt.Errorf("%w: no active locality can hold %d liters",
			errs.ErrInsufficientCapacity, found.Quantity)
	}

	return candidates[0].LocalityID, nil
}

func parseProximityKeys(raw map[string]float64) (map[kernel.UUID]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	keys := make(map[kernel.UUID]float64, len(raw))
	for id, key := range raw {
		localityID, err := kernel.UUIDFromString(id)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("proximityKeys", err)
		}
		keys[localityID] = key
	}
	return keys, nil
}
