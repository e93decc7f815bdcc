package form

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	siteerrors "github.com/tareeqi/tareeqweb/internal/errors"
)

// MinMessageLength is the shortest accepted contact message, counted in
// UTF-16 code units as a browser counts a textarea.
const MinMessageLength = 10

// space is the whitespace set of browser regexps and String.prototype.trim,
// wider than RE2's \s.
const space = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d` + space + `-]{8,}$`)
)

// Validation messages.
const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email"
	MsgPhoneRequired   = "Phone number is required"
	MsgPhoneInvalid    = "Please enter a valid phone number"
	MsgSubjectRequired = "Subject is required"
	MsgMessageRequired = "Message is required"
	MsgMessageTooShort = "Message must be at least 10 characters"
	MsgKindInvalid     = "Please choose a form type"
)

// Errors maps a field to its error message. A missing key means the field
// is valid.
type Errors map[Field]string

// Valid reports whether there are no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Has reports whether f currently has an error.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Err converts the mapping to an error, or nil when valid. Fields are
// reported in display order.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}

	order := make(map[Field]int)
	for i, f := range Fields() {
		order[f] = i
	}
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return order[fields[i]] < order[fields[j]] })

	vec := &siteerrors.ValidationErrorCollection{}
	for _, f := range fields {
		vec.AddField(string(f), nil, e[f])
	}
	return vec
}

// Validate checks every applicable rule and returns all failures at once.
func Validate(v Values) Errors {
	errs := make(Errors)

	if isBlank(v.Name) {
		errs[FieldName] = MsgNameRequired
	}

	if isBlank(v.Email) {
		errs[FieldEmail] = MsgEmailRequired
	} else if !emailPattern.MatchString(v.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch v.Kind {
	case KindBeta:
		if isBlank(v.Phone) {
			errs[FieldPhone] = MsgPhoneRequired
		} else if !phonePattern.MatchString(v.Phone) {
			errs[FieldPhone] = MsgPhoneInvalid
		}
	case KindContact:
		if isBlank(v.Subject) {
			errs[FieldSubject] = MsgSubjectRequired
		}
		if isBlank(v.Message) {
			errs[FieldMessage] = MsgMessageRequired
		} else if utf16Len(trim(v.Message)) < MinMessageLength {
			errs[FieldMessage] = MsgMessageTooShort
		}
	default:
		errs[FieldKind] = MsgKindInvalid
	}

	return errs
}

func isBlank(s string) bool {
	return trim(s) == ""
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
