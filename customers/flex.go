package customers

import (
	"encoding/json"
	"strings"
)

// FlexString accepts JSON strings and bare scalars (numbers, booleans) alike.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = FlexString(str)
	default:
		*f = FlexString(s)
	}
	return nil
}

// Tags is stored by the backend as a comma separated string but may also
// arrive as an array.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*t = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	*t = SplitTags(joined)
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t Tags) String() string {
	return strings.Join(t, ",")
}

// SplitTags splits a comma separated tag list, dropping blanks.
func SplitTags(s string) Tags {
	tags := Tags{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
