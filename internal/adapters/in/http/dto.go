package http

import (
	"time"

	"waterdelivery/internal/core/application/reporting"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/locality"
	"waterdelivery/internal/core/domain/model/report"
	"waterdelivery/internal/core/domain/model/request"
	"waterdelivery/internal/core/domain/model/ticket"
)

type createRequestBody struct {
	RequesterID string `json:"requesterId" validate:"required,uuid"`
	Category    string `json:"category"    validate:"required,oneof=urgent normal commercial"`
	Quantity    int    `json:"quantity"    validate:"required,gt=0"`
	Description string `json:"description" validate:"max=1000"`
}

type changeStatusBody struct {
	Action string `json:"action" validate:"required"`
	Notes  string `json:"notes"  validate:"max=1000"`
}

type assignBody struct {
	AdvisorID     string             `json:"advisorId"     validate:"required,uuid"`
	LocalityID    string             `json:"localityId"    validate:"omitempty,uuid"`
	Strategy      string             `json:"strategy"      validate:"required_without=LocalityID"`
	ProximityKeys map[string]float64 `json:"proximityKeys"`
	Notes         string             `json:"notes"         validate:"max=1000"`
}

type addLocalityBody struct {
	Name              string `json:"name"              validate:"required,max=255"`
	Address           string `json:"address"           validate:"max=1000"`
	MaxCapacityLiters int    `json:"maxCapacityLiters" validate:"required,gt=0"`
}

type setActiveBody struct {
	Active *bool `json:"active" validate:"required"`
}

type deliveryBody struct {
	Outcome           string `json:"outcome"           validate:"required,oneof=delivered partial cancelled"`
	DeliveredQuantity *int   `json:"deliveredQuantity" validate:"required,gte=0"`
	Notes             string `json:"notes"             validate:"max=1000"`
}

type generateReportBody struct {
	LocalityID  string    `json:"localityId"  validate:"required,uuid"`
	ManagerID   string    `json:"managerId"   validate:"required,uuid"`
	Kind        string    `json:"kind"        validate:"required,oneof=daily weekly monthly custom"`
	PeriodStart time.Time `json:"periodStart" validate:"required"`
	PeriodEnd   time.Time `json:"periodEnd"   validate:"required,gtefield=PeriodStart"`
}

type requestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requesterId"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	Deadline    time.Time `json:"deadline"`
	Overdue     *bool     `json:"overdue,omitempty"`
	LocalityID  *string   `json:"localityId,omitempty"`
	TicketCode  *string   `json:"ticketCode,omitempty"`
}

func newRequestResponse(r *request.Request) requestResponse {
	return requestResponse{
		ID:          r.ID().String(),
		RequesterID: r.RequesterID().String(),
		Category:    r.Category().String(),
		Quantity:    r.Quantity(),
		Description: r.Description(),
		Status:      r.Status().String(),
		Priority:    r.Priority(),
		CreatedAt:   r.CreatedAt(),
		Deadline:    r.Deadline(),
	}
}

func newRequestReadResponse(r queries.GetRequestQueryResponse) requestResponse {
	response := requestResponse{
		ID:          r.ID.String(),
		RequesterID: r.RequesterID.String(),
		Category:    r.Category,
		Quantity:    r.Quantity,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		CreatedAt:   r.CreatedAt,
		Deadline:    r.Deadline,
		Overdue:     &r.Overdue,
		TicketCode:  r.TicketCode,
	}
	if r.LocalityID != nil {
		id := r.LocalityID.String()
		response.LocalityID = &id
	}
	return response
}

type assignmentResponse struct {
	AssignmentID  string    `json:"assignmentId"`
	RequestID     string    `json:"requestId"`
	LocalityID    string    `json:"localityId"`
	RequestStatus string    `json:"requestStatus"`
	TicketID      string    `json:"ticketId"`
	TicketCode    string    `json:"ticketCode"`
	AssignedAt    time.Time `json:"assignedAt"`
}

func newAssignmentResponse(r commands.AssignRequestResult) assignmentResponse {
	return assignmentResponse{
		AssignmentID:  r.Assignment.ID().String(),
		RequestID:     r.Request.ID().String(),
		LocalityID:    r.Assignment.LocalityID().String(),
		RequestStatus: r.Request.Status().String(),
		TicketID:      r.Ticket.ID().String(),
		TicketCode:    r.Ticket.Code().String(),
		AssignedAt:    r.Assignment.AssignedAt(),
	}
}

type localityResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	AvailableLiters   int    `json:"availableLiters"`
	MaxCapacityLiters int    `json:"maxCapacityLiters"`
	Active            bool   `json:"active"`
}

func newLocalityResponse(l *locality.Locality) localityResponse {
	return localityResponse{
		ID:                l.ID().String(),
		Name:              l.Name(),
		Address:           l.Address(),
		AvailableLiters:   l.AvailableLiters(),
		MaxCapacityLiters: l.MaxCapacityLiters(),
		Active:            l.IsActive(),
	}
}

type localityReadResponse struct {
	localityResponse
	OpenTickets int `json:"openTickets"`
}

func newLocalityReadResponse(l queries.GetLocalityQueryResponse) localityReadResponse {
	return localityReadResponse{
		localityResponse: localityResponse{
			ID:                l.ID.String(),
			Name:              l.Name,
			Address:           l.Address,
			AvailableLiters:   l.AvailableLiters,
			MaxCapacityLiters: l.MaxCapacityLiters,
			Active:            l.Active,
		},
		OpenTickets: l.OpenTickets,
	}
}

type candidateResponse struct {
	LocalityID        string   `json:"localityId"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	AvailableLiters   int      `json:"availableLiters"`
	MaxCapacityLiters int      `json:"maxCapacityLiters"`
	ProximityKey      *float64 `json:"proximityKey,omitempty"`
}

type ticketResponse struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	Status            string     `json:"status"`
	IssuedAt          time.Time  `json:"issuedAt"`
	ArrivalAt         *time.Time `json:"arrivalAt,omitempty"`
	DeliveredQuantity *int       `json:"deliveredQuantity,omitempty"`
	Notes             string     `json:"notes"`
	RequestID         string     `json:"requestId"`
	RequestStatus     string     `json:"requestStatus"`
}

func newTicketResponse(t *ticket.Ticket, r *request.Request) ticketResponse {
	return ticketResponse{
		ID:                t.ID().String(),
		Code:              t.Code().String(),
		Status:            t.Status().String(),
		IssuedAt:          t.IssuedAt(),
		ArrivalAt:         t.ArrivalAt(),
		DeliveredQuantity: t.DeliveredQuantity(),
		Notes:             t.Notes(),
		RequestID:         r.ID().String(),
		RequestStatus:     r.Status().String(),
	}
}

type ticketDetailsResponse struct {
	ticketResponse
	Category        string    `json:"category"`
	Quantity        int       `json:"quantity"`
	RequestDeadline time.Time `json:"requestDeadline"`
	LocalityID      string    `json:"localityId"`
	LocalityName    string    `json:"localityName"`
	LocalityAddress string    `json:"localityAddress"`
}

func newTicketDetailsResponse(t queries.GetTicketByCodeQueryResponse) ticketDetailsResponse {
	return ticketDetailsResponse{
		ticketResponse: ticketResponse{
			ID:                t.TicketID.String(),
			Code:              t.Code,
			Status:            t.Status,
			IssuedAt:          t.IssuedAt,
			ArrivalAt:         t.ArrivalAt,
			DeliveredQuantity: t.DeliveredQuantity,
			Notes:             t.Notes,
			RequestID:         t.RequestID.String(),
			RequestStatus:     t.RequestStatus,
		},
		Category:        t.Category,
		Quantity:        t.Quantity,
		RequestDeadline: t.RequestDeadline,
		LocalityID:      t.LocalityID.String(),
		LocalityName:    t.LocalityName,
		LocalityAddress: t.LocalityAddress,
	}
}

type openTicketResponse struct {
	TicketID         string    `json:"ticketId"`
	Code             string    `json:"code"`
	Status           string    `json:"status"`
	IssuedAt         time.Time `json:"issuedAt"`
	RequestID        string    `json:"requestId"`
	Category         string    `json:"category"`
	Quantity         int       `json:"quantity"`
	RequestCreatedAt time.Time `json:"requestCreatedAt"`
	RequestDeadline  time.Time `json:"requestDeadline"`
}

type reportResponse struct {
	ID          string         `json:"id"`
	LocalityID  string         `json:"localityId"`
	ManagerID   string         `json:"managerId"`
	Kind        string         `json:"kind"`
	PeriodStart time.Time      `json:"periodStart"`
	PeriodEnd   time.Time      `json:"periodEnd"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Metrics     report.Metrics `json:"metrics"`
}

func newReportResponse(r *report.Report) reportResponse {
	return reportResponse{
		ID:          r.ID().String(),
		LocalityID:  r.LocalityID().String(),
		ManagerID:   r.ManagerID().String(),
		Kind:        string(r.Kind()),
		PeriodStart: r.Period().Start,
		PeriodEnd:   r.Period().End,
		GeneratedAt: r.GeneratedAt(),
		Metrics:     r.Metrics(),
	}
}

type commandLogResponse struct {
	Result string          `json:"result"`
	Cursor int             `json:"cursor"`
	Report *reportResponse `json:"report,omitempty"`
}

type historyEntryResponse struct {
	Position    int    `json:"position"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type auditEntryResponse struct {
	At          time.Time `json:"at"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Result      string    `json:"result"`
}

type historyResponse struct {
	Cursor  int                    `json:"cursor"`
	Entries []historyEntryResponse `json:"entries"`
	Audit   []auditEntryResponse   `json:"audit"`
}

func newHistoryResponse(invoker *reporting.Invoker) historyResponse {
	response := historyResponse{
		Cursor:  invoker.Cursor(),
		Entries: make([]historyEntryResponse, 0),
		Audit:   make([]auditEntryResponse, 0),
	}
	for _, h := range invoker.History() {
		response.Entries = append(response.Entries, historyEntryResponse{
			Position:    h.Position,
			Description: h.Description,
			Active:      h.Active,
		})
	}
	for _, a := range invoker.Audit() {
		response.Audit = append(response.Audit, auditEntryResponse{
			At:          a.At,
			Action:      string(a.Action),
			Description: a.Description,
			Result:      a.Result,
		})
	}
	return response
}
