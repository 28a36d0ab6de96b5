package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-crm-workspace/customers"
)

const tabIDPrefix = "customer-"

// TabID is the stable tab identifier for a customer.
func TabID(customerID int64) string {
	return fmt.Sprintf("%s%d", tabIDPrefix, customerID)
}

// Tab is one customer record opened in the workspace.
type Tab struct {
	ID         string                 `json:"id"`
	CustomerID int64                  `json:"customerId"`
	Type       customers.CustomerType `json:"type"`
	Title      string                 `json:"title"`
	Customer   customers.Customer     `json:"customer"`
}

func newTab(light customers.LightCustomer, customer customers.Customer) *Tab {
	return &Tab{
		ID:         TabID(light.CustomerID),
		CustomerID: light.CustomerID,
		Type:       light.CustType,
		Title:      light.Title(),
		Customer:   customer,
	}
}

func (t *Tab) clone() *Tab {
	c := *t
	return &c
}

func encodeTabs(tabs []*Tab) (string, error) {
	if tabs == nil {
		tabs = []*Tab{}
	}
	b, err := json.Marshal(tabs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeTabs drops entries without an id and repeated ids, keeping the first.
func decodeTabs(raw string) ([]*Tab, error) {
	var decoded []*Tab
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	tabs := make([]*Tab, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	for _, t := range decoded {
		if t == nil || t.ID == "" {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		tabs = append(tabs, t)
	}
	return tabs, nil
}
