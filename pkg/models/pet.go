package models

// PetProfile is the optional subject context supplied with a consultation
// request. All fields are caller-provided; the engine only serializes them
// into the prompt.
type PetProfile struct {
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
	Age     string `json:"age,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// IsEmpty reports whether no pet details were supplied.
func (p *PetProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.Species == "" && p.Breed == "" &&
		p.Age == "" && p.Weight == "" && p.Gender == "" && p.Notes == ""
}
