package account

import "time"

// SignupDetails is the payload of a signup request.
type SignupDetails struct {
	UserID         string
	Password       string
	Name           string
	GenderIdentity GenderIdentity
	DateOfBirth    time.Time
}

// Modifications describes a change to the stored account details.
// Modified values are written; Removed keys are cleared.
type Modifications struct {
	Modified Details
	Removed  []Key
}

// TouchesCredentials reports whether the userId or password is being
// changed. Removing the password counts as a change.
func (m Modifications) TouchesCredentials() bool {
	if m.Modified.Has(KeyUserID) || m.Modified.Has(KeyPassword) {
		return true
	}
	for _, k := range m.Removed {
		if k == KeyPassword {
			return true
		}
	}
	return false
}
