package site

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/tareeqi/tareeqweb/internal/form"
)

type fieldSpec struct {
	field       form.Field
	label       string
	inputType   string
	placeholder string
	required    bool
	pattern     string
	minLength   int
	kind        form.Kind // empty: shown for every kind
}

var formFields = []fieldSpec{
	{field: form.FieldName, label: "Full Name", inputType: "text", placeholder: "Enter your full name", required: true},
	{field: form.FieldEmail, label: "Email", inputType: "email", placeholder: "Enter your email", required: true, pattern: emailPatternAttr},
	{field: form.FieldPhone, label: "Phone Number", inputType: "tel", placeholder: "Enter your phone number", pattern: phonePatternAttr, kind: form.KindBeta},
	{field: form.FieldSubject, label: "Subject", inputType: "text", placeholder: "What is this about?", kind: form.KindContact},
	{field: form.FieldMessage, label: "Message", placeholder: "Write your message", minLength: form.MinMessageLength, kind: form.KindContact},
}

// toggles the kind-specific groups when the selector changes; inputs of a
// hidden group are disabled so its constraints do not block submission
const kindToggleScript = `(function(){var s=document.getElementById("kind");if(!s)return;` +
	`s.addEventListener("change",function(){document.querySelectorAll("[data-kind]").forEach(function(g){` +
	`g.hidden=g.getAttribute("data-kind")!==s.value;` +
	`g.querySelectorAll("input,textarea").forEach(function(i){i.disabled=g.hidden;});});});})();`

// FormView renders one form instance: its values, field errors, status
// banner and submit button. A form pinned to a kind by lock carries it in
// a hidden input instead of a selector.
func FormView(opts Options, state *form.State, lock form.Kind) templ.Component {
	return component(func(h *html) {
		values := state.Values()
		errs := state.Errors()
		status := state.Status()
		busy := state.Busy()
		kind := values.Kind

		// A reset after success returns to the contact kind; a pinned form
		// keeps showing its own.
		locked := lock != ""
		if locked {
			kind = lock
		}

		// An external action means no server answers the POST, so the
		// relay script takes over submission.
		relay := opts.FormAction != ""
		action := opts.FormAction
		if action == "" {
			if locked {
				action = opts.Href("/")
			} else {
				action = opts.Href("/contact/")
			}
		}

		h.open("form", "class", "site-form", "method", "post", "action", action, when(relay, "data-relay"), "")

		if locked {
			h.open("input", "type", "hidden", "name", string(form.FieldKind), "value", string(kind))
		} else {
			h.open("div", "class", "form-group")
			h.el("label", "Form Type", "for", "kind")
			h.open("select", "id", "kind", "name", string(form.FieldKind))
			h.open("option", "value", string(form.KindContact), when(kind != form.KindBeta, "selected"), "")
			h.text("Contact Form")
			h.close("option")
			h.open("option", "value", string(form.KindBeta), when(kind == form.KindBeta, "selected"), "")
			h.text("Beta Registration")
			h.close("option")
			h.close("select")
			fieldError(h, errs, form.FieldKind)
			h.close("div")
		}

		for _, f := range formFields {
			if f.kind != "" && locked && f.kind != kind {
				continue
			}
			hidden := f.kind != "" && f.kind != kind
			id := string(f.field)
			invalid := errs.Has(f.field)

			attrs := []string{"class", "form-group"}
			if f.kind != "" {
				attrs = append(attrs, "data-kind", string(f.kind))
			}
			attrs = append(attrs, when(hidden, "hidden"), "")
			h.open("div", attrs...)

			h.el("label", f.label, "for", id)
			input := []string{
				"id", id,
				"name", id,
				"placeholder", f.placeholder,
				"class", classes("input", when(invalid, "input-error")),
				when(f.required, "required"), "",
				when(f.pattern != "", "pattern"), f.pattern,
				when(f.minLength > 0, "minlength"), strconv.Itoa(f.minLength),
				when(hidden, "disabled"), "",
				when(invalid, "aria-invalid"), "true",
				when(invalid, "aria-describedby"), id + "-error",
			}
			if f.field == form.FieldMessage {
				h.open("textarea", append(input, "rows", "5")...)
				h.text(values.Get(f.field))
				h.close("textarea")
			} else {
				h.open("input", append([]string{"type", f.inputType, "value", values.Get(f.field)}, input...)...)
			}
			fieldError(h, errs, f.field)
			h.close("div")
		}

		if !status.IsIdle() {
			role := "status"
			if status.Kind == form.StatusError {
				role = "alert"
			}
			h.el("p", status.Message, "class", "form-status form-status-"+string(status.Kind), "role", role)
		}

		label := submitLabel(kind)
		if busy {
			label = sendingLabel
		}
		h.open("button", "type", "submit", "class", "button button-block", when(busy, "disabled"), "")
		h.text(label)
		h.close("button")

		h.close("form")

		if !locked {
			h.raw("<script>", kindToggleScript, "</script>")
		}
		if relay {
			script, err := relayScript(opts)
			if err != nil {
				if h.err == nil {
					h.err = err
				}
				return
			}
			h.raw("<script>", script, "</script>")
		}
	})
}

func fieldError(h *html, errs form.Errors, f form.Field) {
	msg, ok := errs[f]
	if !ok {
		return
	}
	h.el("p", msg, "id", string(f)+"-error", "class", "field-error")
}
