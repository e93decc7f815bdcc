package form

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() Values {
	return Values{
		Name:    "Ali",
		Email:   "ali@example.com",
		Kind:    KindContact,
		Subject: "Partnership",
		Message: "We would like to pilot Tareeqi in our city.",
	}
}

func validBeta() Values {
	return Values{
		Name:  "Sara",
		Email: "sara@example.com",
		Kind:  KindBeta,
		Phone: "+966 55 262 6165",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   Errors
	}{
		{
			name:   "valid contact",
			values: validContact(),
			want:   Errors{},
		},
		{
			name:   "valid beta",
			values: validBeta(),
			want:   Errors{},
		},
		{
			name:   "short message and missing name",
			values: Values{Name: "", Email: "a@b.com", Kind: KindContact, Subject: "hi", Message: "short"},
			want: Errors{
				FieldName:    MsgNameRequired,
				FieldMessage: MsgMessageTooShort,
			},
		},
		{
			name:   "bad email and short phone",
			values: Values{Name: "Ali", Email: "ali@", Kind: KindBeta, Phone: "12345"},
			want: Errors{
				FieldEmail: MsgEmailInvalid,
				FieldPhone: MsgPhoneInvalid,
			},
		},
		{
			name:   "everything blank contact",
			values: Values{Name: "  ", Email: "\t", Kind: KindContact, Subject: " ", Message: "   "},
			want: Errors{
				FieldName:    MsgNameRequired,
				FieldEmail:   MsgEmailRequired,
				FieldSubject: MsgSubjectRequired,
				FieldMessage: MsgMessageRequired,
			},
		},
		{
			name:   "beta ignores subject and message",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindBeta, Phone: "0552626165"},
			want:   Errors{},
		},
		{
			name:   "contact ignores phone",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindContact, Phone: "x", Subject: "Hi", Message: "0123456789"},
			want:   Errors{},
		},
		{
			name:   "blank phone on beta",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindBeta, Phone: " "},
			want:   Errors{FieldPhone: MsgPhoneRequired},
		},
		{
			name:   "message padded with spaces is measured trimmed",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindContact, Subject: "Hi", Message: "  short     "},
			want:   Errors{FieldMessage: MsgMessageTooShort},
		},
		{
			name:   "email without dot after at",
			values: Values{Name: "Ali", Email: "ali@localhost", Kind: KindBeta, Phone: "12345678"},
			want:   Errors{FieldEmail: MsgEmailInvalid},
		},
		{
			name:   "phone with letters",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindBeta, Phone: "call-me-later"},
			want:   Errors{FieldPhone: MsgPhoneInvalid},
		},
		{
			name:   "no-break space inside email",
			values: Values{Name: "Ali", Email: "a\u00a0b@c.com", Kind: KindBeta, Phone: "12345678"},
			want:   Errors{FieldEmail: MsgEmailInvalid},
		},
		{
			name:   "vertical tab inside email",
			values: Values{Name: "Ali", Email: "a\vb@c.com", Kind: KindBeta, Phone: "12345678"},
			want:   Errors{FieldEmail: MsgEmailInvalid},
		},
		{
			name:   "byte order mark only name is blank",
			values: Values{Name: "\ufeff", Email: "ali@example.com", Kind: KindBeta, Phone: "12345678"},
			want:   Errors{FieldName: MsgNameRequired},
		},
		{
			name:   "phone grouped with no-break spaces",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindBeta, Phone: "+966\u00a0551234567"},
			want:   Errors{},
		},
		{
			name:   "phone grouped with thin spaces",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindBeta, Phone: "055\u2009262\u20096165"},
			want:   Errors{},
		},
		{
			name:   "ideographic spaces only message is blank",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindContact, Subject: "\u3000", Message: "\u3000\u3000"},
			want:   Errors{FieldSubject: MsgSubjectRequired, FieldMessage: MsgMessageRequired},
		},
		{
			name:   "message trimmed of no-break spaces",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: KindContact, Subject: "Hi", Message: "\u00a0short\u00a0\u00a0\u00a0\u00a0\u00a0"},
			want:   Errors{FieldMessage: MsgMessageTooShort},
		},
		{
			name:   "next line is not whitespace",
			values: Values{Name: "\u0085", Email: "ali@example.com", Kind: KindBeta, Phone: "12345678"},
			want:   Errors{},
		},
		{
			name:   "unknown kind",
			values: Values{Name: "Ali", Email: "ali@example.com", Kind: Kind("newsletter")},
			want:   Errors{FieldKind: MsgKindInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.values))
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	v := Values{Name: "", Email: "bad", Kind: KindBeta, Phone: ""}
	first := Validate(v)
	second := Validate(v)

	assert.Equal(t, first, second)
	assert.Equal(t, Values{Name: "", Email: "bad", Kind: KindBeta, Phone: ""}, v)
}

func TestMessageLengthCountsUTF16Units(t *testing.T) {
	v := validContact()
	v.Message = "مرحبا بكم!" // ten units, more than ten bytes
	assert.True(t, Validate(v).Valid())

	v.Message = "مرحبا"
	assert.Equal(t, Errors{FieldMessage: MsgMessageTooShort}, Validate(v))

	// Astral characters take two units each, as in a browser.
	v.Message = "ab😀😀😀😀"
	assert.True(t, Validate(v).Valid())

	v.Message = "😀😀😀😀"
	assert.Equal(t, Errors{FieldMessage: MsgMessageTooShort}, Validate(v))
}

func TestErrorsErr(t *testing.T) {
	assert.NoError(t, Errors{}.Err())

	err := Errors{FieldMessage: MsgMessageTooShort, FieldName: MsgNameRequired}.Err()
	require.Error(t, err)
	// name comes before message in display order
	msg := err.Error()
	assert.Less(t, strings.Index(msg, "name:"), strings.Index(msg, "message:"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Beta ")
	require.NoError(t, err)
	assert.Equal(t, KindBeta, k)

	_, err = ParseKind("newsletter")
	assert.Error(t, err)
}

func TestPayload(t *testing.T) {
	t.Run("contact", func(t *testing.T) {
		p, err := validContact().Payload()
		require.NoError(t, err)
		assert.Equal(t, KindContact, p.Kind())

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "contact", body["kind"])
		assert.Equal(t, "Partnership", body["subject"])
		assert.NotContains(t, body, "phone")
	})

	t.Run("beta", func(t *testing.T) {
		v := validBeta()
		v.Subject = "ignored"
		p, err := v.Payload()
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, map[string]string{
			"name":  "Sara",
			"email": "sara@example.com",
			"kind":  "beta",
			"phone": "+966 55 262 6165",
		}, body)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Values{Kind: "x"}.Payload()
		assert.Error(t, err)
	})
}
