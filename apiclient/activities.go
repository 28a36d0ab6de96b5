package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-crm-workspace/customers"
)

const (
	interactionAPIBase = "/v1/customer/interactions"
	noteAPIBase        = "/v1/customer/notes"
	ticketAPIBase      = "/v1/customer/tickets"
	projectAPIBase     = "/v1/customer/projects"
)

// Interactions

func (c *Client) CreateInteraction(ctx context.Context, customerID int64, interaction customers.Interaction) (*customers.Interaction, error) {
	var created customers.Interaction
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/add/%d", interactionAPIBase, customerID), nil, interaction, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListInteractions(ctx context.Context, customerID int64, page Page) (customers.Collection[customers.Interaction], error) {
	var list customers.Collection[customers.Interaction]
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/all/%d", interactionAPIBase, customerID), page.query(), nil, &list)
	return list, err
}

func (c *Client) DeleteInteraction(ctx context.Context, interactionID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", interactionAPIBase, interactionID), nil, nil)
	return err
}

// Notes

func (c *Client) ListNotes(ctx context.Context, customerID int64, page Page) (customers.Collection[customers.Note], error) {
	var list customers.Collection[customers.Note]
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/all/%d", noteAPIBase, customerID), page.query(), nil, &list)
	return list, err
}

// CreateNote sends the tags as one comma separated string, the way the backend stores them.
func (c *Client) CreateNote(ctx context.Context, customerID int64, note customers.Note) (*customers.Note, error) {
	body := customers.Note{Content: note.Content, Author: note.Author, Tags: note.Tags}
	if body.Tags == nil {
		body.Tags = customers.Tags{}
	}

	var created customers.Note
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/add/%d", noteAPIBase, customerID), nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateNote(ctx context.Context, noteID int64, note customers.Note) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/update/%d", noteAPIBase, noteID), nil, note)
	return err
}

func (c *Client) DeleteNote(ctx context.Context, noteID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", noteAPIBase, noteID), nil, nil)
	return err
}

// Tickets

func (c *Client) ListTickets(ctx context.Context, customerID int64, page Page) (customers.Collection[customers.Ticket], error) {
	var list customers.Collection[customers.Ticket]
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/all/%d", ticketAPIBase, customerID), page.query(), nil, &list)
	return list, err
}

func (c *Client) CreateTicket(ctx context.Context, customerID int64, ticket customers.Ticket) (*customers.Ticket, error) {
	var created customers.Ticket
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/add/%d", ticketAPIBase, customerID), nil, ticket, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTicket(ctx context.Context, ticketID int64, ticket customers.Ticket) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/update/%d", ticketAPIBase, ticketID), nil, ticket)
	return err
}

func (c *Client) DeleteTicket(ctx context.Context, ticketID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", ticketAPIBase, ticketID), nil, nil)
	return err
}

// Projects

func (c *Client) ListProjects(ctx context.Context, customerID int64) (customers.Collection[customers.Project], error) {
	var list customers.Collection[customers.Project]
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/all/%d", projectAPIBase, customerID), nil, nil, &list)
	return list, err
}

func (c *Client) CreateProject(ctx context.Context, customerID int64, project customers.Project) (*customers.Project, error) {
	var created customers.Project
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/add/%d", projectAPIBase, customerID), nil, project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", projectAPIBase, projectID), nil, nil)
	return err
}
