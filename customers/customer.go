// Package customers holds the CRM customer records as the backend serves them
// and the merged payload a workspace tab keeps for an open customer.
package customers

import (
	"strings"
	"time"
)

// CustomerType distinguishes company customers from individuals.
type CustomerType string

const (
	TypeB2B CustomerType = "B2B"
	TypeB2C CustomerType = "B2C"
)

type Address struct {
	Street  string     `json:"street,omitempty"`
	City    string     `json:"city,omitempty"`
	State   string     `json:"state,omitempty"`
	ZipCode FlexString `json:"zipCode,omitempty"`
	Country string     `json:"country,omitempty"`
}

type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
}

// B2B is the company profile of a business customer.
type B2B struct {
	CompanyName        string              `json:"companyName,omitempty"`
	CommercialRegister string              `json:"commercialRegister,omitempty"`
	Website            string              `json:"website,omitempty"`
	Industry           string              `json:"industry,omitempty"`
	CompanyClass       string              `json:"companyClass,omitempty"`
	CompanySize        string              `json:"companySize,omitempty"`
	Street             string              `json:"street,omitempty"`
	City               string              `json:"city,omitempty"`
	State              string              `json:"state,omitempty"`
	ZipCode            FlexString          `json:"zipCode,omitempty"`
	Country            string              `json:"country,omitempty"`
	PrimaryContactID   *int64              `json:"primaryContactId,omitempty"`
	Contacts           Collection[Contact] `json:"contacts"`
}

// B2C is the personal profile of an individual customer.
type B2C struct {
	Title        string              `json:"title,omitempty"`
	FirstName    string              `json:"firstName,omitempty"`
	SecondName   string              `json:"secondName,omitempty"`
	LastName     string              `json:"lastName,omitempty"`
	Email        string              `json:"email,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Gender       string              `json:"gender,omitempty"`
	Birthdate    string              `json:"birthdate,omitempty"`
	IDType       string              `json:"idType,omitempty"`
	IDNumber     string              `json:"idNumber,omitempty"`
	CustCategory string              `json:"custCategory,omitempty"`
	Addresses    Collection[Address] `json:"addresses"`
}

// LightCustomer is the search-result shape of a customer: enough to render a
// placeholder tab before the full profile arrives.
type LightCustomer struct {
	CustomerID int64        `json:"customerId"`
	CustType   CustomerType `json:"custType"`
	Status     string       `json:"status,omitempty"`
	B2B        *B2B         `json:"b2b,omitempty"`
	B2C        *B2C         `json:"b2c,omitempty"`
}

// Title is the company name for B2B customers and "first last" for everyone else.
func (c LightCustomer) Title() string {
	if c.CustType == TypeB2B {
		if c.B2B == nil || c.B2B.CompanyName == "" {
			return "Company"
		}
		return c.B2B.CompanyName
	}
	if c.B2C == nil {
		return ""
	}
	return strings.TrimSpace(c.B2C.FirstName + " " + c.B2C.LastName)
}

// Metadata summarises the collections of a merged customer.
type Metadata struct {
	TotalInteractions  int       `json:"totalInteractions"`
	TotalProjects      int       `json:"totalProjects"`
	TotalOpportunities int       `json:"totalOpportunities"`
	TotalTickets       int       `json:"totalTickets"`
	TotalDocuments     int       `json:"totalDocuments"`
	TotalNotes         int       `json:"totalNotes"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// Customer is the payload owned by a workspace tab. Metadata is nil when the
// tab was opened without a profile.
type Customer struct {
	LightCustomer
	Interactions  []Interaction `json:"interactions"`
	Projects      []Project     `json:"projects"`
	Opportunities []Opportunity `json:"opportunities"`
	Tickets       []Ticket      `json:"tickets"`
	Documents     []Document    `json:"documents"`
	Notes         []Note        `json:"notes"`
	Metadata      *Metadata     `json:"metadata,omitempty"`
}

// FromLight is the degraded payload used when the profile could not be fetched.
func FromLight(light LightCustomer) Customer {
	return Customer{LightCustomer: light}
}
