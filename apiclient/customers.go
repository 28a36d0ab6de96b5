package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-crm-workspace/customers"
)

const customerAPIBase = "/v1/customer"

// Page selects a page of a paginated listing.
type Page struct {
	Page int
	Size int
}

func (p Page) query() map[string]string {
	size := p.Size
	if size <= 0 {
		size = 20
	}
	return map[string]string{
		"page": strconv.Itoa(max(p.Page, 0)),
		"size": strconv.Itoa(size),
	}
}

// SearchParams filters the customer search. Field is an optional attribute
// name (e.g. "companyName") matched against Value.
type SearchParams struct {
	CustType customers.CustomerType
	Field    string
	Value    string
	Page     Page
}

// CustomerUpdate is the body of a customer update. Exactly one of B2B/B2C is
// expected to be set, matching the customer's type.
type CustomerUpdate struct {
	Status string         `json:"status,omitempty"`
	B2B    *customers.B2B `json:"b2b"`
	B2C    *customers.B2C `json:"b2c"`
}

// GetCustomerProfile fetches the full profile including every nested collection.
func (c *Client) GetCustomerProfile(ctx context.Context, customerID int64) (*customers.Profile, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/profile/%d", customerAPIBase, customerID), nil, nil)
	if err != nil {
		return nil, err
	}
	return customers.DecodeProfile(raw)
}

func (c *Client) SearchCustomers(ctx context.Context, params SearchParams) (customers.Collection[customers.LightCustomer], error) {
	query := params.Page.query()
	if params.CustType != "" {
		query["custType"] = string(params.CustType)
	}
	if params.Field != "" {
		query[params.Field] = params.Value
	}

	var result customers.Collection[customers.LightCustomer]
	err := c.doJSON(ctx, http.MethodGet, customerAPIBase+"/search", query, nil, &result)
	return result, err
}

// UpdateCustomer returns the customer as stored after the update.
func (c *Client) UpdateCustomer(ctx context.Context, customerID int64, update CustomerUpdate) (*customers.Profile, error) {
	raw, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", customerAPIBase, customerID), nil, update)
	if err != nil {
		return nil, err
	}
	return customers.DecodeProfile(raw)
}

func (c *Client) AddContact(ctx context.Context, customerID int64, contact customers.Contact) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/contact/add/%d", customerAPIBase, customerID), nil, contact)
	return err
}

func (c *Client) DeleteContact(ctx context.Context, customerID, contactID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/contact/delete/%d/%d", customerAPIBase, customerID, contactID), nil, nil)
	return err
}

func (c *Client) SetPrimaryContact(ctx context.Context, customerID, contactID int64) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/contact/primary/%d/%d", customerAPIBase, customerID, contactID), nil, nil)
	return err
}
