//go:build property
// +build property

package form

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValidatorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("well-formed contact forms are valid", prop.ForAll(
		func(name, local, domain, subject, message string) bool {
			v := Values{
				Name:    name,
				Email:   local + "@" + domain + ".com",
				Kind:    KindContact,
				Subject: subject,
				Message: message,
			}
			return Validate(v).Valid()
		},
		gen.RegexMatch(`^[A-Za-z][A-Za-z ]{0,20}$`),
		gen.RegexMatch(`^[a-z0-9._]{1,12}$`),
		gen.RegexMatch(`^[a-z0-9]{1,12}$`),
		gen.RegexMatch(`^[A-Za-z][A-Za-z ]{0,30}$`),
		gen.RegexMatch(`^[A-Za-z0-9]{10,60}$`),
	))

	properties.Property("beta forms with a blank phone report the phone", prop.ForAll(
		func(name, email, blank string) bool {
			errs := Validate(Values{Name: name, Email: email, Kind: KindBeta, Phone: blank})
			return errs.Has(FieldPhone) && errs[FieldPhone] == MsgPhoneRequired
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.RegexMatch(`^[ \t]{0,5}$`),
	))

	properties.Property("validation is deterministic", prop.ForAll(
		func(name, email, phone, subject, message string, beta bool) bool {
			kind := KindContact
			if beta {
				kind = KindBeta
			}
			v := Values{Name: name, Email: email, Phone: phone, Subject: subject, Message: message, Kind: kind}
			return reflect.DeepEqual(Validate(v), Validate(v))
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
	))

	properties.Property("editing a field removes exactly its error", prop.ForAll(
		func(fieldIndex int, value string) bool {
			state := NewState(SenderFunc(nil), WithValues(Values{Kind: KindContact}))
			before := state.Submit(context.Background())

			fields := []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}
			field := fields[fieldIndex%len(fields)]
			state.Edit(field, value)
			after := state.Errors()

			if after.Has(field) {
				return false
			}
			for f, msg := range before {
				if f != field && after[f] != msg {
					return false
				}
			}
			return len(after) == len(before)-1
		},
		gen.IntRange(0, 3),
		gen.AnyString(),
	))

	properties.Property("phone accepts digits spaces and dashes", prop.ForAll(
		func(plus bool, digits string) bool {
			phone := digits
			if plus {
				phone = "+" + phone
			}
			errs := Validate(Values{Name: "A", Email: "a@b.co", Kind: KindBeta, Phone: phone})
			valid := len(digits) >= 8 && strings.TrimSpace(phone) != ""
			return errs.Has(FieldPhone) != valid
		},
		gen.Bool(),
		gen.RegexMatch(`^[0-9 -]{0,16}$`),
	))

	properties.TestingRun(t)
}
