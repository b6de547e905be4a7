package model

import "strings"

// DefaultCode is the placeholder referral code used whenever a profile is
// stored without one.
const DefaultCode = "0000"

// Identity is the reference handed over by the identity provider after
// login. It carries just enough to find or synthesize a profile.
type Identity struct {
	Auth0ID string
	Name    string
	Email   string
}

// Profile is the single user profile record kept on the device.
type Profile struct {
	Auth0ID   string `json:"auth0ID,omitempty"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Code      string `json:"code"`
}

func (p Profile) IsZero() bool {
	return p == Profile{}
}

// WithDefaults fills invariant fields that must never persist empty.
func (p Profile) WithDefaults() Profile {
	out := p
	if strings.TrimSpace(out.Code) == "" {
		out.Code = DefaultCode
	}
	return out
}

// ProfileUpdate is a typed partial update. Nil fields are left untouched by
// Apply; set fields overwrite, including with an empty string.
type ProfileUpdate struct {
	Name      *string
	BirthDate *string
	Gender    *string
	Email     *string
	Code      *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.BirthDate == nil && u.Gender == nil && u.Email == nil && u.Code == nil
}

// Apply merges the update into base field by field and returns the result.
func (u ProfileUpdate) Apply(base Profile) Profile {
	out := base
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.BirthDate != nil {
		out.BirthDate = *u.BirthDate
	}
	if u.Gender != nil {
		out.Gender = *u.Gender
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.Code != nil {
		out.Code = *u.Code
	}
	return out
}
