package account

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format of dateOfBirth.
const DateLayout = "2006-01-02"

// Details is an immutable set of account values keyed by Key.
// Use Builder to construct one.
type Details struct {
	values map[Key]any
}

// Has reports whether k is set.
func (d Details) Has(k Key) bool {
	_, ok := d.values[k]
	return ok
}

// Len returns the number of keys set.
func (d Details) Len() int {
	return len(d.values)
}

// Keys returns the set keys sorted alphabetically.
func (d Details) Keys() []Key {
	keys := make([]Key, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (d Details) str(k Key) string {
	s, _ := d.values[k].(string)
	return s
}

func (d Details) AccountID() string { return d.str(KeyAccountID) }
func (d Details) UserID() string    { return d.str(KeyUserID) }
func (d Details) Password() string  { return d.str(KeyPassword) }
func (d Details) Name() string      { return d.str(KeyName) }
func (d Details) Biography() string { return d.str(KeyBiography) }

func (d Details) GenderIdentity() GenderIdentity {
	g, _ := d.values[KeyGenderIdentity].(GenderIdentity)
	return g
}

func (d Details) DateOfBirth() time.Time {
	t, _ := d.values[KeyDateOfBirth].(time.Time)
	return t
}

// MarshalJSON encodes the set keys as a flat object. The password is never
// written out.
func (d Details) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		switch k {
		case KeyPassword:
			continue
		case KeyDateOfBirth:
			out[string(k)] = v.(time.Time).Format(DateLayout)
		default:
			out[string(k)] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat object of string values. Unknown keys are
// rejected.
func (d *Details) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b := NewBuilder()
	for name, value := range raw {
		k := Key(name)
		if err := b.SetString(k, value); err != nil {
			return err
		}
	}
	*d = b.Build()
	return nil
}

// Builder accumulates values for a Details snapshot.
// Setting a zero value leaves the key unset.
type Builder struct {
	values map[Key]any
}

func NewBuilder() *Builder {
	return &Builder{values: make(map[Key]any)}
}

func (b *Builder) setString(k Key, v string) *Builder {
	if v == "" {
		delete(b.values, k)
		return b
	}
	b.values[k] = v
	return b
}

func (b *Builder) SetAccountID(v string) *Builder { return b.setString(KeyAccountID, v) }
func (b *Builder) SetUserID(v string) *Builder    { return b.setString(KeyUserID, v) }
func (b *Builder) SetPassword(v string) *Builder  { return b.setString(KeyPassword, v) }
func (b *Builder) SetName(v string) *Builder      { return b.setString(KeyName, v) }
func (b *Builder) SetBiography(v string) *Builder { return b.setString(KeyBiography, v) }

func (b *Builder) SetGenderIdentity(v GenderIdentity) *Builder {
	if v == "" {
		delete(b.values, KeyGenderIdentity)
		return b
	}
	b.values[KeyGenderIdentity] = v
	return b
}

func (b *Builder) SetDateOfBirth(v time.Time) *Builder {
	if v.IsZero() {
		delete(b.values, KeyDateOfBirth)
		return b
	}
	b.values[KeyDateOfBirth] = v
	return b
}

// SetString sets k from its wire representation.
func (b *Builder) SetString(k Key, v string) error {
	switch k {
	case KeyAccountID, KeyUserID, KeyPassword, KeyName, KeyBiography:
		b.setString(k, v)
	case KeyGenderIdentity:
		b.SetGenderIdentity(GenderIdentity(v))
	case KeyDateOfBirth:
		if v == "" {
			b.SetDateOfBirth(time.Time{})
			return nil
		}
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", k, err)
		}
		b.SetDateOfBirth(t)
	default:
		return fmt.Errorf("unknown account key %q", k)
	}
	return nil
}

// Build returns a snapshot of the current builder state. Later calls on the
// builder do not affect it.
func (b *Builder) Build() Details {
	values := make(map[Key]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return Details{values: values}
}
