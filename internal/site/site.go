// Package site holds the Tareeqi marketing pages as templ components: the
// shared layout, the five routes and the form view.
//
// Every link the pages emit is root-relative under Options.BasePath. The
// export pipeline later rewrites them relative to each file.
package site

import (
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tareeqi/tareeqweb/internal/form"
)

// StylesheetPath is where the embedded stylesheet is served and written.
const StylesheetPath = "/assets/site.css"

// Options control how pages are rendered.
type Options struct {
	SiteName     string
	BasePath     string // "" or "/Name", no trailing slash
	FormAction   string // where forms post; empty posts back to the page
	Year         int
	SupportEmail string
	SupportPhone string
	DashboardURL string
	LiveReload   bool
}

// DefaultOptions returns the production rendering options.
func DefaultOptions() Options {
	return Options{
		SiteName:     "Tareeqi",
		BasePath:     "/TareeqWeb",
		Year:         time.Now().Year(),
		SupportEmail: form.DefaultSupportEmail,
		SupportPhone: "+966 552626165",
		DashboardURL: "https://dashboard.tareeqi.com",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SiteName == "" {
		o.SiteName = d.SiteName
	}
	if o.Year == 0 {
		o.Year = d.Year
	}
	if o.SupportEmail == "" {
		o.SupportEmail = d.SupportEmail
	}
	if o.SupportPhone == "" {
		o.SupportPhone = d.SupportPhone
	}
	if o.DashboardURL == "" {
		o.DashboardURL = d.DashboardURL
	}
	return o
}

// Href returns the link for a site-relative path.
func (o Options) Href(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return o.BasePath + path
}

// Route is one page of the site.
type Route struct {
	Path        string // "/" or "/name/"
	Name        string // lower-case label, title-cased for display
	Title       string
	Description string

	// FormKind is the kind of the form the page hosts, empty when none.
	FormKind form.Kind
	// LockKind pins the form to FormKind.
	LockKind bool

	body func(opts Options, state *form.State) templ.Component
}

// Label returns the navigation label.
func (r Route) Label() string {
	return cases.Title(language.English).String(r.Name)
}

// HasForm reports whether the page hosts a form.
func (r Route) HasForm() bool {
	return r.FormKind != ""
}

// NewForm creates the form instance for one rendering of the page.
func (r Route) NewForm(sender form.Sender, opts ...form.Option) *form.State {
	v := form.Empty()
	if r.FormKind != "" {
		v.Kind = r.FormKind
	}
	return form.NewState(sender, append([]form.Option{form.WithValues(v)}, opts...)...)
}

// OutputFile is the file the route is exported to, relative to the out dir.
func (r Route) OutputFile() string {
	return strings.TrimPrefix(r.Path, "/") + "index.html"
}

var routes = []Route{
	{
		Path:        "/",
		Name:        "home",
		Title:       "Tareeqi - Road Monitoring App",
		Description: "A revolutionary approach to road monitoring using AI and community input",
		FormKind:    form.KindBeta,
		LockKind:    true,
		body:        homeBody,
	},
	{
		Path:        "/features/",
		Name:        "features",
		Title:       "Features - Tareeqi",
		Description: "Smartphone sensors, AI anomaly detection and a live dashboard for road quality.",
		body:        featuresBody,
	},
	{
		Path:        "/how-it-works/",
		Name:        "how it works",
		Title:       "How It Works - Tareeqi",
		Description: "From driver labels to an XGBoost model that keeps learning from the community.",
		body:        howItWorksBody,
	},
	{
		Path:        "/about/",
		Name:        "about",
		Title:       "About - Tareeqi",
		Description: "The Jouf University team building Tareeqi.",
		body:        aboutBody,
	},
	{
		Path:        "/contact/",
		Name:        "contact",
		Title:       "Contact - Tareeqi",
		Description: "Get in touch with our team or join our beta program",
		FormKind:    form.KindContact,
		body:        contactBody,
	},
}

// Routes lists every page in navigation order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for a request path. "/features" and "/features/"
// both match.
func Lookup(path string) (Route, bool) {
	if path == "" {
		path = "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Page renders a route inside the layout. A nil state renders a fresh form
// for pages that host one.
func Page(r Route, opts Options, state *form.State) templ.Component {
	opts = opts.withDefaults()
	if state == nil && r.HasForm() {
		state = r.NewForm(nil)
	}
	return Layout(opts, r, r.body(opts, state))
}
