package customers

import (
	"bytes"
	"encoding/json"

	"github.com/jrsteele09/go-crm-workspace/internal/utils"
)

// Collection decodes a list field that the backend sends either as a bare
// array or wrapped as {"data": [...], "totalCount": n}. Any other shape
// decodes to an empty collection.
type Collection[T any] struct {
	Items      []T
	TotalCount *int
}

func (c *Collection[T]) UnmarshalJSON(b []byte) error {
	*c = Collection[T]{}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &c.Items)
	case '{':
		var wrapped struct {
			Data       json.RawMessage `json:"data"`
			TotalCount *int            `json:"totalCount"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		c.TotalCount = wrapped.TotalCount
		if data := bytes.TrimSpace(wrapped.Data); len(data) > 0 && data[0] == '[' {
			return json.Unmarshal(data, &c.Items)
		}
	}
	return nil
}

// MarshalJSON keeps the wrapped form when a server total is known so that a
// stored collection decodes back to the same value.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	if c.TotalCount != nil {
		return json.Marshal(struct {
			Data       []T `json:"data"`
			TotalCount int `json:"totalCount"`
		}{Data: c.List(), TotalCount: *c.TotalCount})
	}
	if c.Items == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Items)
}

// List never returns nil.
func (c Collection[T]) List() []T {
	if c.Items == nil {
		return []T{}
	}
	return c.Items
}

// Total prefers the server reported count over the number of decoded items.
func (c Collection[T]) Total() int {
	return utils.ValueOr(c.TotalCount, len(c.Items))
}
