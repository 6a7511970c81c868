package http

import (
	"net/http"
	"strconv"
	"strings"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AddLocality handles POST /api/v1/localities.
func (s *Server) AddLocality(c echo.Context) error {
	var body addLocalityBody
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAddLocalityCommand(kernel.NewUUID(), body.Name, body.Address, body.MaxCapacityLiters)
	if err != nil {
		return err
	}

	added, err := s.handlers.AddLocality.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newLocalityResponse(added))
}

// GetLocalities handles GET /api/v1/localities?active=true.
func (s *Server) GetLocalities(c echo.Context) error {
	var activeOnly bool
	if err := echo.QueryParamsBinder(c).Bool("active", &activeOnly).BindError(); err != nil {
		return err
	}

	found, err := s.handlers.GetLocalities.Handle(c.Request().Context(), queries.NewGetLocalitiesQuery(activeOnly))
	if err != nil {
		return err
	}

	response := make([]localityReadResponse, len(found))
	for i, l := range found {
		response[i] = newLocalityReadResponse(l)
	}

	return c.JSON(http.StatusOK, response)
}

// GetLocality handles GET /api/v1/localities/:id.
func (s *Server) GetLocality(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetLocalityQuery(id)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetLocality.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newLocalityReadResponse(found))
}

// SetLocalityActive handles PUT /api/v1/localities/:id/active.
func (s *Server) SetLocalityActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var body setActiveBody
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSetLocalityActiveCommand(id, *body.Active)
	if err != nil {
		return err
	}

	updated, err := s.handlers.SetLocalityActive.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newLocalityResponse(updated))
}

// SelectCandidates handles GET /api/v1/localities/candidates?strategy=&quantity=.
// Proximity keys are passed as repeated proximity=<localityId>:<key> values.
func (s *Server) SelectCandidates(c echo.Context) error {
	var (
		strategy  string
		quantity  int
		proximity []string
	)
	if err := echo.QueryParamsBinder(c).
		String("strategy", &strategy).
		Int("quantity", &quantity).
		Strings("proximity", &proximity).
		BindError(); err != nil {
		return err
	}

	keys, err := parseProximityParams(proximity)
	if err != nil {
		return err
	}

	query, err := queries.NewSelectCandidatesQuery(strategy, quantity, keys)
	if err != nil {
		return err
	}

	candidates, err := s.handlers.SelectCandidates.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]candidateResponse, len(candidates))
	for i, candidate := range candidates {
		response[i] = candidateResponse{
			LocalityID:        candidate.LocalityID.String(),
			Name:              candidate.Name,
			Address:           candidate.Address,
			AvailableLiters:   candidate.AvailableLiters,
			MaxCapacityLiters: candidate.MaxCapacityLiters,
			ProximityKey:      candidate.ProximityKey,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetOpenTickets handles GET /api/v1/localities/:id/tickets.
func (s *Server) GetOpenTickets(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOpenTicketsByLocalityQuery(id)
	if err != nil {
		return err
	}

	tickets, err := s.handlers.GetOpenTicketsByLocality.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]openTicketResponse, len(tickets))
	for i, t := range tickets {
		response[i] = openTicketResponse{
			TicketID:         t.TicketID.String(),
			Code:             t.Code,
			Status:           t.Status,
			IssuedAt:         t.IssuedAt,
			RequestID:        t.RequestID.String(),
			Category:         t.Category,
			Quantity:         t.Quantity,
			RequestCreatedAt: t.RequestCreatedAt,
			RequestDeadline:  t.RequestDeadline,
		}
	}

	return c.JSON(http.StatusOK, response)
}

func parseProximityParams(values []string) (map[kernel.UUID]float64, error) {
	raw := make(map[string]float64, len(values))
	for _, value := range values {
		id, key, ok := strings.Cut(value, ":")
		if !ok {
			return nil, errs.NewValueIsInvalidError("proximity")
		}
		parsed, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("proximity", err)
		}
		raw[id] = parsed
	}
	return parseProximityKeys(raw)
}
