package customers_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/go-crm-workspace/customers"
	"github.com/stretchr/testify/require"
)

func TestCollectionUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		items int
		total int
	}{
		{name: "bare list", raw: `[{"ticketId":1},{"ticketId":2}]`, items: 2, total: 2},
		{name: "wrapped list", raw: `{"data":[{"ticketId":1}],"totalCount":9}`, items: 1, total: 9},
		{name: "wrapped without total", raw: `{"data":[{"ticketId":1}]}`, items: 1, total: 1},
		{name: "wrapped non list", raw: `{"data":{"ticketId":1}}`, items: 0, total: 0},
		{name: "null", raw: `null`, items: 0, total: 0},
		{name: "string", raw: `"nope"`, items: 0, total: 0},
		{name: "number", raw: `12`, items: 0, total: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c customers.Collection[customers.Ticket]
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &c))
			require.Len(t, c.List(), tc.items)
			require.NotNil(t, c.List())
			require.Equal(t, tc.total, c.Total())
		})
	}
}

func TestCollectionMissingFieldIsEmpty(t *testing.T) {
	p, err := customers.DecodeProfile([]byte(`{"customerId":5,"custType":"B2B"}`))
	require.NoError(t, err)
	require.Empty(t, p.Tickets.List())
	require.NotNil(t, p.Tickets.List())
}

func TestCollectionRoundTrip(t *testing.T) {
	var in customers.Collection[customers.Note]
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"noteId":3,"content":"hi","tags":"a, b"}],"totalCount":4}`), &in))

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out customers.Collection[customers.Note]
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, in, out)
	require.Equal(t, customers.Tags{"a", "b"}, out.Items[0].Tags)
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Acme", customers.LightCustomer{CustType: customers.TypeB2B, B2B: &customers.B2B{CompanyName: "Acme"}}.Title())
	require.Equal(t, "Company", customers.LightCustomer{CustType: customers.TypeB2B}.Title())
	require.Equal(t, "A B", customers.LightCustomer{CustType: customers.TypeB2C, B2C: &customers.B2C{FirstName: "A", LastName: "B"}}.Title())
	require.Equal(t, "A", customers.LightCustomer{CustType: customers.TypeB2C, B2C: &customers.B2C{FirstName: "A"}}.Title())
}

func TestDecodeProfileEnvelope(t *testing.T) {
	raw := `{"data":[{"customerId":42,"custType":"B2C","interactions":{"data":[{"interactionId":1},{"interactionId":2}]},"projects":[{"projectId":7}]}],"totalCount":12}`

	p, err := customers.DecodeProfile([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, int64(42), p.CustomerID)
	require.Len(t, p.Interactions.List(), 2)
	require.Len(t, p.Projects.List(), 1)
	require.NotNil(t, p.TotalCount)
	require.Equal(t, 12, *p.TotalCount)
}

func TestDecodeProfileBare(t *testing.T) {
	raw := `{"customerId":42,"custType":"B2B","b2b":{"companyName":"Acme","zipCode":12345},"tickets":{"data":[{"ticketId":1}],"totalCount":30}}`

	p, err := customers.DecodeProfile([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, customers.FlexString("12345"), p.B2B.ZipCode)
	require.Equal(t, 30, p.Tickets.Total())
	require.Nil(t, p.TotalCount)
}

func TestDecodeProfileRejectsGarbage(t *testing.T) {
	_, err := customers.DecodeProfile([]byte(`[1,2]`))
	require.Error(t, err)

	_, err = customers.DecodeProfile([]byte(`{"data":[]}`))
	require.Error(t, err)

	_, err = customers.DecodeProfile(nil)
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	light := customers.LightCustomer{CustomerID: 42, CustType: customers.TypeB2C, B2C: &customers.B2C{FirstName: "A", LastName: "B"}}

	p, err := customers.DecodeProfile([]byte(`{
		"customerId": 42,
		"interactions": [{"interactionId":1},{"interactionId":2}],
		"projects": {"data":[{"projectId":1}],"totalCount":5},
		"opportunities": {"data": null},
		"notes": [{"noteId":1,"content":"x","tags":["a"]}],
		"totalCount": 40
	}`))
	require.NoError(t, err)

	c := customers.Merge(light, p, now)
	require.Equal(t, light, c.LightCustomer)
	require.Len(t, c.Interactions, 2)
	require.Empty(t, c.Opportunities)
	require.NotNil(t, c.Tickets)
	require.Equal(t, &customers.Metadata{
		TotalInteractions:  40,
		TotalProjects:      5,
		TotalOpportunities: 0,
		TotalTickets:       0,
		TotalDocuments:     0,
		TotalNotes:         1,
		LastUpdated:        now,
	}, c.Metadata)
}

func TestFromLight(t *testing.T) {
	light := customers.LightCustomer{CustomerID: 1, CustType: customers.TypeB2B}
	c := customers.FromLight(light)
	require.Equal(t, light, c.LightCustomer)
	require.Nil(t, c.Metadata)
	require.Nil(t, c.Interactions)
}

func TestTags(t *testing.T) {
	var n customers.Note
	require.NoError(t, json.Unmarshal([]byte(`{"content":"c","tags":"vip, ,renewal"}`), &n))
	require.Equal(t, customers.Tags{"vip", "renewal"}, n.Tags)

	raw, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{"content":"c","tags":"vip,renewal"}`, string(raw))
}

func TestProfileLightPrefersServerFields(t *testing.T) {
	stored := customers.LightCustomer{
		CustomerID: 5,
		CustType:   customers.TypeB2C,
		Status:     "ACTIVE",
		B2C:        &customers.B2C{FirstName: "Ann"},
	}

	p := &customers.Profile{LightCustomer: customers.LightCustomer{
		Status: "INACTIVE",
		B2C:    &customers.B2C{FirstName: "Anne", LastName: "Lee"},
	}}
	light := p.Light(stored)
	require.Equal(t, int64(5), light.CustomerID)
	require.Equal(t, customers.TypeB2C, light.CustType)
	require.Equal(t, "INACTIVE", light.Status)
	require.Equal(t, "Anne Lee", light.Title())

	empty := &customers.Profile{}
	require.Equal(t, stored, empty.Light(stored))
}
