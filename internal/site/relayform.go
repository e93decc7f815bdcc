package site

import (
	"encoding/json"
	"strings"

	"github.com/tareeqi/tareeqweb/internal/form"
)

// Constraint attributes mirroring form.Validate for browsers without the
// relay script. Browsers compile pattern with the v flag, where a literal
// dash inside a class must be escaped.
const (
	emailPatternAttr = `[^\s@]+@[^\s@]+\.[^\s@]+`
	phonePatternAttr = `\+?[\d\s\-]{8,}`
)

const sendingLabel = "Sending..."

func submitLabel(kind form.Kind) string {
	if kind == form.KindBeta {
		return "Join Beta Program"
	}
	return "Send Message"
}

// relayFormScript runs the form state machine in the browser for forms that
// post straight to the relay: the same checks and messages as form.Validate
// and form.State, one JSON POST, busy button, status banner, reset on
// success and values kept on failure. It binds to form[data-relay].
const relayFormScript = `(function(){var M=__MESSAGES__;` +
	`var EMAIL=/^[^\s@]+@[^\s@]+\.[^\s@]+$/,PHONE=/^\+?[\d\s-]{8,}$/;` +
	`var FIELDS=["kind","name","email","phone","subject","message"];` +
	`function blank(s){return s.trim()==="";}` +
	`function validate(v){var e={};` +
	`if(blank(v.name))e.name=M.nameRequired;` +
	`if(blank(v.email))e.email=M.emailRequired;else if(!EMAIL.test(v.email))e.email=M.emailInvalid;` +
	`if(v.kind==="beta"){if(blank(v.phone))e.phone=M.phoneRequired;else if(!PHONE.test(v.phone))e.phone=M.phoneInvalid;}` +
	`else if(v.kind==="contact"){if(blank(v.subject))e.subject=M.subjectRequired;` +
	`if(blank(v.message))e.message=M.messageRequired;else if(v.message.trim().length<M.minMessage)e.message=M.messageTooShort;}` +
	`else e.kind=M.kindInvalid;return e;}` +
	`function payload(v){var p={name:v.name,email:v.email,kind:v.kind};` +
	`if(v.kind==="beta")p.phone=v.phone;else{p.subject=v.subject;p.message=v.message;}return p;}` +
	`function rejection(r,t){var d=null,m="relay responded "+r.status;try{d=JSON.parse(t);}catch(x){}` +
	`if(d&&typeof d.error==="string"&&d.error)return m+": "+d.error;` +
	`if(d&&d.errors&&d.errors.length){var l=d.errors.map(function(x){return x&&x.message;}).filter(Boolean);if(l.length)return m+": "+l.join("; ");}` +
	`return m;}` +
	`document.querySelectorAll("form[data-relay]").forEach(function(f){` +
	`var button=f.querySelector("button[type=submit]"),busy=false;f.noValidate=true;` +
	`function values(){var v={};FIELDS.forEach(function(n){var el=f.elements[n];v[n]=el?el.value:"";});return v;}` +
	`function clearError(n){var el=f.elements[n],p=document.getElementById(n+"-error");if(p)p.remove();` +
	`if(el&&el.classList){el.classList.remove("input-error");el.removeAttribute("aria-invalid");el.removeAttribute("aria-describedby");}}` +
	`function showErrors(e){Object.keys(e).forEach(function(n){var el=f.elements[n];if(!el)return;` +
	`var p=document.createElement("p");p.id=n+"-error";p.className="field-error";p.textContent=e[n];` +
	`el.insertAdjacentElement("afterend",p);el.classList.add("input-error");` +
	`el.setAttribute("aria-invalid","true");el.setAttribute("aria-describedby",p.id);});}` +
	`function setStatus(k,msg){var s=f.querySelector(".form-status");if(!k){if(s)s.remove();return;}` +
	`if(!s){s=document.createElement("p");f.insertBefore(s,button);}` +
	`s.className="form-status form-status-"+k;s.setAttribute("role",k==="error"?"alert":"status");s.textContent=msg;}` +
	`function setBusy(b,k){busy=b;button.disabled=b;button.textContent=b?M.sending:(M.label[k]||M.label.contact);}` +
	`f.addEventListener("input",function(ev){if(ev.target.name)clearError(ev.target.name);});` +
	`f.addEventListener("change",function(ev){if(ev.target.name==="kind"){clearError("kind");if(!busy)setBusy(false,ev.target.value);}});` +
	`f.addEventListener("submit",function(ev){ev.preventDefault();if(busy)return;` +
	`var v=values(),e=validate(v);FIELDS.forEach(clearError);showErrors(e);if(Object.keys(e).length)return;` +
	`setStatus("");setBusy(true,v.kind);` +
	`fetch(f.action,{method:"POST",headers:{"Content-Type":"application/json","Accept":"application/json"},body:JSON.stringify(payload(v))})` +
	`.then(function(r){return r.text().then(function(t){if(!r.ok)throw new Error(rejection(r,t));});},` +
	`function(){throw new Error("relay unreachable");})` +
	`.then(function(){f.reset();busy=false;var sel=f.querySelector("select[name=kind]");` +
	`if(sel)sel.dispatchEvent(new Event("change",{bubbles:true}));` +
	`setStatus("success",M.success[v.kind]);setBusy(false,values().kind);},` +
	`function(x){setStatus("error",M.failure[v.kind]+" ("+x.message+")");setBusy(false,v.kind);});` +
	`});});})();`

// relayMessages is the message table the relay script reads. Marshalled
// with encoding/json, which escapes <, > and & so it cannot close the
// script element.
type relayMessages struct {
	NameRequired    string               `json:"nameRequired"`
	EmailRequired   string               `json:"emailRequired"`
	EmailInvalid    string               `json:"emailInvalid"`
	PhoneRequired   string               `json:"phoneRequired"`
	PhoneInvalid    string               `json:"phoneInvalid"`
	SubjectRequired string               `json:"subjectRequired"`
	MessageRequired string               `json:"messageRequired"`
	MessageTooShort string               `json:"messageTooShort"`
	KindInvalid     string               `json:"kindInvalid"`
	MinMessage      int                  `json:"minMessage"`
	Success         map[form.Kind]string `json:"success"`
	Failure         map[form.Kind]string `json:"failure"`
	Label           map[form.Kind]string `json:"label"`
	Sending         string               `json:"sending"`
}

func relayScript(opts Options) (string, error) {
	support := opts.SupportEmail
	if support == "" {
		support = form.DefaultSupportEmail
	}

	msgs := relayMessages{
		NameRequired:    form.MsgNameRequired,
		EmailRequired:   form.MsgEmailRequired,
		EmailInvalid:    form.MsgEmailInvalid,
		PhoneRequired:   form.MsgPhoneRequired,
		PhoneInvalid:    form.MsgPhoneInvalid,
		SubjectRequired: form.MsgSubjectRequired,
		MessageRequired: form.MsgMessageRequired,
		MessageTooShort: form.MsgMessageTooShort,
		KindInvalid:     form.MsgKindInvalid,
		MinMessage:      form.MinMessageLength,
		Success:         make(map[form.Kind]string),
		Failure:         make(map[form.Kind]string),
		Label:           make(map[form.Kind]string),
		Sending:         sendingLabel,
	}
	for _, k := range []form.Kind{form.KindContact, form.KindBeta} {
		msgs.Success[k] = form.SuccessMessage(k)
		msgs.Failure[k] = form.FailureMessage(k, support)
		msgs.Label[k] = submitLabel(k)
	}

	data, err := json.Marshal(msgs)
	if err != nil {
		return "", err
	}
	return strings.Replace(relayFormScript, "__MESSAGES__", string(data), 1), nil
}
