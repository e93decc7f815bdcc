// Package form implements the contact and beta-registration form: the field
// values a visitor edits, the validator, and the submission state machine
// that sends a valid form to the email relay.
//
// A State is one form instance. It is created fresh for every page
// instance and never persisted.
package form

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind selects which optional fields are mandatory.
type Kind string

const (
	KindContact Kind = "contact"
	KindBeta    Kind = "beta"
)

// ParseKind parses a form kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindContact:
		return KindContact, nil
	case KindBeta:
		return KindBeta, nil
	default:
		return "", fmt.Errorf("unknown form kind %q (contact, beta)", s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindContact || k == KindBeta
}

// Field names a form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
	FieldKind    Field = "kind"
)

// Fields lists every field in display order.
func Fields() []Field {
	return []Field{FieldKind, FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}
}

// Values holds the raw text of every input. Which of Phone or
// Subject+Message matters is decided by Kind.
type Values struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Kind    Kind
}

// Empty returns the values of a fresh form.
func Empty() Values {
	return Values{Kind: KindContact}
}

// Get returns the current text of a field.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldSubject:
		return v.Subject
	case FieldMessage:
		return v.Message
	case FieldKind:
		return string(v.Kind)
	}
	return ""
}

// Set writes a field. Unknown fields are ignored and reported with false.
// A kind that does not parse is stored verbatim so validation can flag it.
func (v *Values) Set(f Field, value string) bool {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldSubject:
		v.Subject = value
	case FieldMessage:
		v.Message = value
	case FieldKind:
		if k, err := ParseKind(value); err == nil {
			v.Kind = k
		} else {
			v.Kind = Kind(value)
		}
	default:
		return false
	}
	return true
}

// Payload converts the values to the shape sent to the relay.
func (v Values) Payload() (Payload, error) {
	switch v.Kind {
	case KindContact:
		return ContactPayload{Name: v.Name, Email: v.Email, Subject: v.Subject, Message: v.Message}, nil
	case KindBeta:
		return BetaPayload{Name: v.Name, Email: v.Email, Phone: v.Phone}, nil
	default:
		return nil, fmt.Errorf("unknown form kind %q", v.Kind)
	}
}

// Payload is the body of one relay submission: a ContactPayload or a
// BetaPayload.
type Payload interface {
	Kind() Kind
	payload()
}

// ContactPayload is a general contact message.
type ContactPayload struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (ContactPayload) Kind() Kind { return KindContact }
func (ContactPayload) payload()   {}

// MarshalJSON emits name, email, kind, subject and message.
func (p ContactPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Kind    Kind   `json:"kind"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}{p.Name, p.Email, KindContact, p.Subject, p.Message})
}

// BetaPayload is a beta program registration.
type BetaPayload struct {
	Name  string
	Email string
	Phone string
}

func (BetaPayload) Kind() Kind { return KindBeta }
func (BetaPayload) payload()   {}

// MarshalJSON emits name, email, kind and phone.
func (p BetaPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Kind  Kind   `json:"kind"`
		Phone string `json:"phone"`
	}{p.Name, p.Email, KindBeta, p.Phone})
}
