package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entity names as used by the remote store collections.
const (
	EntityStudents = "students"
	EntityTeachers = "teachers"
)

// ID identifies a record within its collection. The store assigns it on
// creation and may send it as a JSON string or number.
type ID string

// UnmarshalJSON accepts string, number or null identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Gender is the canonical two-valued gender of a record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// UnmarshalJSON decodes both wire encodings (boolean and string).
func (g *Gender) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	*g = NormalizeGender(raw)
	return nil
}

// Display returns the capitalised label shown on cards and detail pages.
func (g Gender) Display() string {
	if g == GenderMale {
		return "Male"
	}
	return "Female"
}

// Rating keeps the raw rating exactly as stored; see NormalizeRating.
type Rating struct {
	Value   float64
	Present bool
}

// NewRating builds a present rating.
func NewRating(v float64) Rating {
	return Rating{Value: v, Present: true}
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*r = Rating{}
			return nil
		}
		*r = NewRating(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = NewRating(v)
	return nil
}

// MarshalJSON writes the raw value back, or null when absent.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Present {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// NeedsBackfill reports a stored value outside the 1-5 scale whose meaning
// had to be guessed by NormalizeRating.
func (r Rating) NeedsBackfill() bool {
	return r.Present && (r.Value < 1 || r.Value > maxRating)
}

// Contact holds the optional contact fields shared by students and teachers.
type Contact struct {
	Phone    string `json:"phone,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Student is a learner record from the students collection.
type Student struct {
	ID     ID     `json:"id"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Grade  int    `json:"grade" validate:"min=1,max=12"`
	Age    int    `json:"age" validate:"gte=0"`
	Gender Gender `json:"gender" validate:"oneof=male female"`
	Rating Rating `json:"rating"`
	Coins  int    `json:"coins" validate:"gte=0"`
	Contact
}

func (s *Student) RecordID() ID         { return s.ID }
func (s *Student) RecordGender() Gender { return s.Gender }
func (s *Student) RecordRating() Rating { return s.Rating }
func (s *Student) RecordName() string   { return s.Name }
func (s *Student) AssignID(id ID)       { s.ID = id }

// Teacher is an instructor record from the teachers collection.
type Teacher struct {
	ID         ID     `json:"id"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Age        int    `json:"age" validate:"gte=0"`
	Gender     Gender `json:"gender" validate:"oneof=male female"`
	Rating     Rating `json:"rating"`
	Subject    string `json:"subject" validate:"required"`
	Experience int    `json:"experience" validate:"gte=0"`
	Contact
}

func (t *Teacher) RecordID() ID         { return t.ID }
func (t *Teacher) RecordGender() Gender { return t.Gender }
func (t *Teacher) RecordRating() Rating { return t.Rating }
func (t *Teacher) RecordName() string   { return t.Name }
func (t *Teacher) AssignID(id ID)       { t.ID = id }
