package customers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Profile is the full customer record returned by the profile endpoint.
type Profile struct {
	LightCustomer
	Interactions  Collection[Interaction] `json:"interactions"`
	Projects      Collection[Project]     `json:"projects"`
	Opportunities Collection[Opportunity] `json:"opportunities"`
	Tickets       Collection[Ticket]      `json:"tickets"`
	Documents     Collection[Document]    `json:"documents"`
	Notes         Collection[Note]        `json:"notes"`
	TotalCount    *int                    `json:"totalCount,omitempty"`
}

// DecodeProfile accepts either a bare profile object or an envelope of the
// form {"data": [profile], "totalCount": n}.
func DecodeProfile(raw []byte) (*Profile, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '{' {
		return nil, errors.New("[DecodeProfile] payload is not a JSON object")
	}

	var envelope struct {
		Data       json.RawMessage `json:"data"`
		TotalCount *int            `json:"totalCount"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "[DecodeProfile] envelope")
	}

	if data := bytes.TrimSpace(envelope.Data); len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, errors.Wrap(err, "[DecodeProfile] data")
		}
		if len(items) == 0 {
			return nil, errors.New("[DecodeProfile] empty data envelope")
		}
		body = items[0]
	}

	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, errors.Wrap(err, "[DecodeProfile] profile")
	}
	if p.TotalCount == nil {
		p.TotalCount = envelope.TotalCount
	}
	return &p, nil
}

// Light returns the profile's own summary fields, taking any field the
// profile leaves empty from stored.
func (p *Profile) Light(stored LightCustomer) LightCustomer {
	light := p.LightCustomer
	if light.CustomerID == 0 {
		light.CustomerID = stored.CustomerID
	}
	if light.CustType == "" {
		light.CustType = stored.CustType
	}
	if light.Status == "" {
		light.Status = stored.Status
	}
	if light.B2B == nil {
		light.B2B = stored.B2B
	}
	if light.B2C == nil {
		light.B2C = stored.B2C
	}
	return light
}

// Merge builds the tab payload from the light record the user picked and the
// collections of the fetched profile.
func Merge(light LightCustomer, p *Profile, now time.Time) Customer {
	interactions := p.Interactions.List()

	totalInteractions := len(interactions)
	if p.Interactions.TotalCount != nil {
		totalInteractions = *p.Interactions.TotalCount
	} else if p.TotalCount != nil {
		totalInteractions = *p.TotalCount
	}

	return Customer{
		LightCustomer: light,
		Interactions:  interactions,
		Projects:      p.Projects.List(),
		Opportunities: p.Opportunities.List(),
		Tickets:       p.Tickets.List(),
		Documents:     p.Documents.List(),
		Notes:         p.Notes.List(),
		Metadata: &Metadata{
			TotalInteractions:  totalInteractions,
			TotalProjects:      p.Projects.Total(),
			TotalOpportunities: p.Opportunities.Total(),
			TotalTickets:       p.Tickets.Total(),
			TotalDocuments:     p.Documents.Total(),
			TotalNotes:         p.Notes.Total(),
			LastUpdated:        now.UTC(),
		},
	}
}
