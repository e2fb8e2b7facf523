package models

import (
	"time"

	"github.com/worldloop/worldloop/internal/itinerary"
	"github.com/worldloop/worldloop/internal/rules"
)

// SegmentPayload is one leg of a submitted itinerary.
type SegmentPayload struct {
	From    string     `json:"from"`
	To      string     `json:"to"`
	Carrier string     `json:"carrier,omitempty"`
	Surface bool       `json:"surface,omitempty"`
	Depart  *Timestamp `json:"depart,omitempty"`
	Arrive  *Timestamp `json:"arrive,omitempty"`
}

// TicketPayload carries the fare-level attributes of an itinerary.
type TicketPayload struct {
	Origin     string `json:"origin"`
	Continents int    `json:"continents"`
	Cabin      string `json:"cabin,omitempty"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Ticket   TicketPayload    `json:"ticket"`
	Segments []SegmentPayload `json:"segments"`
}

// FieldErrors returns structural problems with the request that make it
// unprocessable before validation can run.
func (req ValidateRequest) FieldErrors() []FieldError {
	var errs []FieldError
	if req.Ticket.Origin == "" {
		errs = append(errs, FieldError{Field: "ticket.origin", Message: "required", Code: "REQUIRED"})
	}
	if len(req.Segments) == 0 {
		errs = append(errs, FieldError{Field: "segments", Message: "at least one segment required", Code: "REQUIRED"})
	}
	return errs
}

// Itinerary converts the request into the domain model.
func (req ValidateRequest) Itinerary() itinerary.Itinerary {
	segs := make([]itinerary.Segment, len(req.Segments))
	for i, s := range req.Segments {
		seg := itinerary.Segment{
			From:    s.From,
			To:      s.To,
			Carrier: s.Carrier,
		}
		if s.Surface {
			seg.Kind = itinerary.Surface
		}
		if s.Depart != nil {
			seg.Depart = time.Time(*s.Depart)
		}
		if s.Arrive != nil {
			seg.Arrive = time.Time(*s.Arrive)
		}
		segs[i] = seg
	}
	return itinerary.New(itinerary.Ticket{
		Origin:     req.Ticket.Origin,
		Continents: req.Ticket.Continents,
		Cabin:      itinerary.CabinClass(req.Ticket.Cabin),
	}, segs)
}

// ValidateResponse is the body of a successful POST /v1/validate.
type ValidateResponse struct {
	Valid   bool           `json:"valid"`
	Results []rules.Result `json:"results"`
}

// NewValidateResponse converts a validation report.
func NewValidateResponse(report rules.Report) ValidateResponse {
	results := report.Results
	if results == nil {
		results = []rules.Result{}
	}
	return ValidateResponse{Valid: report.Valid, Results: results}
}
