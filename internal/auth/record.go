package auth

import (
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/google/uuid"
)

// userRecord simulates the backend's single registered user.
type userRecord struct {
	accountID      uuid.UUID
	userID         string
	password       string
	name           string
	genderIdentity account.GenderIdentity
	dateOfBirth    time.Time
	biography      string
}

func newUserRecord(userID string) userRecord {
	return userRecord{
		accountID: uuid.New(),
		userID:    userID,
	}
}

// apply writes modified values and clears removed keys. The accountId is
// immutable and the userId cannot be removed.
func (r *userRecord) apply(m account.Modifications) {
	d := m.Modified
	if d.Has(account.KeyUserID) {
		r.userID = d.UserID()
	}
	if d.Has(account.KeyPassword) {
		r.password = d.Password()
	}
	if d.Has(account.KeyName) {
		r.name = d.Name()
	}
	if d.Has(account.KeyGenderIdentity) {
		r.genderIdentity = d.GenderIdentity()
	}
	if d.Has(account.KeyDateOfBirth) {
		r.dateOfBirth = d.DateOfBirth()
	}
	if d.Has(account.KeyBiography) {
		r.biography = d.Biography()
	}

	for _, k := range m.Removed {
		switch k {
		case account.KeyPassword:
			r.password = ""
		case account.KeyName:
			r.name = ""
		case account.KeyGenderIdentity:
			r.genderIdentity = ""
		case account.KeyDateOfBirth:
			r.dateOfBirth = time.Time{}
		case account.KeyBiography:
			r.biography = ""
		}
	}
}

func (r userRecord) snapshot(includeName bool) account.Details {
	b := account.NewBuilder().
		SetAccountID(r.accountID.String()).
		SetUserID(r.userID).
		SetGenderIdentity(r.genderIdentity).
		SetDateOfBirth(r.dateOfBirth).
		SetBiography(r.biography)

	if includeName {
		b.SetName(r.name)
	}
	return b.Build()
}
