package listing

import "maps"

// FilterState is the set of independent criteria selected on a view.
type FilterState struct {
	Search   string            `json:"search"`
	Gender   string            `json:"gender"`
	Rating   string            `json:"rating"`
	Criteria map[string]string `json:"criteria"`
}

// FilterPatch carries a partial update of a FilterState. Nil fields are left
// unchanged.
type FilterPatch struct {
	Search   *string           `json:"search"`
	Gender   *string           `json:"gender"`
	Rating   *string           `json:"rating"`
	Criteria map[string]string `json:"criteria"`
}

// Clone returns a deep copy.
func (f FilterState) Clone() FilterState {
	f.Criteria = maps.Clone(f.Criteria)
	if f.Criteria == nil {
		f.Criteria = map[string]string{}
	}
	return f
}

// Apply returns a copy of f with the patch applied.
func (f FilterState) Apply(p FilterPatch) FilterState {
	out := f.Clone()
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Gender != nil {
		out.Gender = *p.Gender
	}
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	for k, v := range p.Criteria {
		out.Criteria[k] = v
	}
	return out
}
