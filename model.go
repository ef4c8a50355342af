package statio

import (
	"encoding/json"
	"fmt"
)

// Kind is a column's storage kind.  It is fixed when the column is declared
// and never changes afterward.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "double"
	case KindText:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "double":
		*k = KindNumeric
	case "string":
		*k = KindText
	default:
		return fmt.Errorf("statio: unknown storage kind %q", s)
	}
	return nil
}

// Range is a contiguous interval of numeric values treated as user-missing.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// UserMissing is a per-variable declaration that certain valid-looking
// values, or one contiguous range of them, mean "missing" to consuming
// tools.  String-typed user-missing values are unsupported and dropped.
type UserMissing struct {
	Values []float64 `json:"values,omitempty"`
	Range  *Range    `json:"range,omitempty"`
}

// Variable describes one column of a statistical file.
type Variable struct {
	Name     string       `json:"name"`
	Label    string       `json:"label,omitempty"`
	LabelSet string       `json:"label_set,omitempty"`
	Format   string       `json:"fmt,omitempty"`
	Kind     Kind         `json:"kind"`
	Missing  *UserMissing `json:"user_missing,omitempty"`
}

// LabelSet is a named dictionary mapping raw stored values (stringified) to
// human-readable display labels.  Several variables may share one set.
type LabelSet struct {
	Name    string            `json:"set_name"`
	Mapping map[string]string `json:"mapping"`
}

// TaggedMissing records, for one column, the rows holding tagged missing
// values and their one-character diagnostic tags.  Rows and Tags are
// parallel.
type TaggedMissing struct {
	Column string   `json:"col"`
	Rows   []int    `json:"rows"`
	Tags   []string `json:"tags"`
}

// Metadata is the sibling record that travels next to the columnar payload.
// Its JSON form is the textual key/value document exchanged at the boundary.
type Metadata struct {
	FileLabel      string          `json:"file_label,omitempty"`
	Variables      []Variable      `json:"vars"`
	LabelSets      []LabelSet      `json:"value_labels"`
	Rows           int             `json:"n_rows"`
	TaggedMissings []TaggedMissing `json:"tagged_missings"`
	Notes          []string        `json:"notes"`
}
