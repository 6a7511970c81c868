package http

import (
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/ticket"

	"github.com/labstack/echo/v4"
)

// GetTicket handles GET /api/v1/tickets/:code.
func (s *Server) GetTicket(c echo.Context) error {
	query, err := queries.NewGetTicketByCodeQuery(c.Param("code"))
	if err != nil {
		return err
	}

	found, err := s.handlers.GetTicketByCode.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newTicketDetailsResponse(found))
}

// RegisterArrival handles PUT /api/v1/tickets/:id/arrival.
func (s *Server) RegisterArrival(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterArrivalCommand(id)
	if err != nil {
		return err
	}

	result, err := s.handlers.RegisterArrival.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newTicketResponse(result.Ticket, result.Request))
}

// RegisterDelivery handles PUT /api/v1/tickets/:id/delivery.
func (s *Server) RegisterDelivery(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var body deliveryBody
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	outcome, err := ticket.OutcomeFromString(body.Outcome)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterDeliveryCommand(id, *body.DeliveredQuantity, outcome, body.Notes)
	if err != nil {
		return err
	}

	result, err := s.handlers.RegisterDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newTicketResponse(result.Ticket, result.Request))
}
