package account

// Key identifies a single account detail.
type Key string

// Recognized account keys.
const (
	KeyAccountID      Key = "accountId"
	KeyUserID         Key = "userId"
	KeyPassword       Key = "password"
	KeyName           Key = "name"
	KeyGenderIdentity Key = "genderIdentity"
	KeyDateOfBirth    Key = "dateOfBirth"
	KeyBiography      Key = "biography"
)

// AllKeys lists every recognized key in display order.
var AllKeys = []Key{
	KeyAccountID,
	KeyUserID,
	KeyPassword,
	KeyName,
	KeyGenderIdentity,
	KeyDateOfBirth,
	KeyBiography,
}

// Valid reports whether k is a recognized key.
func (k Key) Valid() bool {
	for _, known := range AllKeys {
		if k == known {
			return true
		}
	}
	return false
}

// UserIDType selects what the login identifier looks like.
type UserIDType string

const (
	UserIDEmail    UserIDType = "emailAddress"
	UserIDUsername UserIDType = "username"
)

const (
	DefaultEmail    = "lelandstanford@stanford.edu"
	DefaultUsername = "lelandstanford"
)

// DisplayName returns the human label used in the service name.
func (t UserIDType) DisplayName() string {
	if t == UserIDUsername {
		return "Username"
	}
	return "E-Mail Address"
}

// DefaultUserID returns the identifier a fresh record starts with.
func (t UserIDType) DefaultUserID() string {
	if t == UserIDUsername {
		return DefaultUsername
	}
	return DefaultEmail
}

// KeyboardType is a hint for the UI input field.
func (t UserIDType) KeyboardType() string {
	if t == UserIDUsername {
		return "default"
	}
	return "emailAddress"
}

// GenderIdentity is the self-reported gender of a user.
type GenderIdentity string

const (
	GenderFemale           GenderIdentity = "female"
	GenderMale             GenderIdentity = "male"
	GenderTransgender      GenderIdentity = "transgender"
	GenderNonBinary        GenderIdentity = "non-binary"
	GenderPreferNotToState GenderIdentity = "prefer-not-to-state"
)
