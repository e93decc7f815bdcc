package site

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

const liveReloadScript = `(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var s=new WebSocket(p+location.host+"/ws");` +
	`s.onmessage=function(e){if(e.data==="reload"){location.reload();}};})();`

// Layout wraps body in the document shell with header and footer.
func Layout(opts Options, r Route, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.raw("<head>")
		h.open("meta", "charset", "utf-8")
		h.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		h.el("title", r.Title)
		h.open("meta", "name", "description", "content", r.Description)
		h.open("link", "rel", "icon", "href", opts.Href("/logo.png"))
		h.open("link", "rel", "stylesheet", "href", opts.Href(StylesheetPath))
		h.raw("</head>")
		h.open("body", "class", "page-"+strings.ReplaceAll(r.Name, " ", "-"))
		h.render(Header(opts, r))
		h.open("main", "id", "main")
		h.render(body)
		h.close("main")
		h.render(Footer(opts))
		if opts.LiveReload {
			h.raw("<script>", liveReloadScript, "</script>")
		}
		h.raw("</body></html>")
	})
}

// Header renders the top navigation. The current route is marked active.
func Header(opts Options, current Route) templ.Component {
	return component(func(h *html) {
		h.open("header", "class", "site-header")
		h.open("div", "class", "container header-inner")
		h.open("a", "class", "brand", "href", opts.Href("/"))
		h.open("img", "src", opts.Href("/logo.png"), "alt", opts.SiteName+" Logo", "width", "40", "height", "40")
		h.el("span", opts.SiteName)
		h.close("a")

		h.open("nav", "class", "site-nav", "aria-label", "Main")
		for _, r := range routes {
			active := r.Path == current.Path
			h.open("a",
				"href", opts.Href(r.Path),
				"class", classes("nav-link", when(active, "active")),
				when(active, "aria-current"), "page")
			h.text(r.Label())
			h.close("a")
		}
		h.open("a", "class", "nav-link nav-cta", "href", opts.DashboardURL, "target", "_blank", "rel", "noopener noreferrer")
		h.text("Dashboard")
		h.close("a")
		h.close("nav")

		h.close("div")
		h.close("header")
	})
}

// Footer renders brand, quick links, contact details and the copyright.
func Footer(opts Options) templ.Component {
	return component(func(h *html) {
		h.open("footer", "class", "site-footer")
		h.open("div", "class", "container footer-grid")

		h.open("div", "class", "footer-brand")
		h.el("h3", opts.SiteName)
		h.el("p", "Making roads safer through AI-powered monitoring and community collaboration.")
		h.close("div")

		h.open("div", "class", "footer-links")
		h.el("h4", "Quick Links")
		h.raw("<ul>")
		for _, r := range routes[1:] {
			h.raw("<li>")
			h.el("a", r.Label(), "href", opts.Href(r.Path))
			h.raw("</li>")
		}
		h.raw("</ul>")
		h.close("div")

		h.open("div", "class", "footer-contact")
		h.el("h4", "Contact")
		h.raw("<ul>")
		h.raw("<li>")
		h.el("a", opts.SupportEmail, "href", "mailto:"+opts.SupportEmail)
		h.raw("</li><li>")
		h.el("a", opts.SupportPhone, "href", "tel:"+telephone(opts.SupportPhone))
		h.raw("</li>")
		h.raw("</ul>")
		h.close("div")

		h.close("div")

		h.open("div", "class", "container footer-bottom")
		h.el("p", fmt.Sprintf("© %d %s. All rights reserved.", opts.Year, opts.SiteName))
		h.close("div")
		h.close("footer")
	})
}

// NotFound is the body of 404.html.
func NotFound(opts Options) templ.Component {
	opts = opts.withDefaults()
	r := Route{Path: "/404/", Name: "not found", Title: "Page not found - " + opts.SiteName}
	return Layout(opts, r, component(func(h *html) {
		h.open("section", "class", "hero hero-small")
		h.open("div", "class", "container")
		h.el("h1", "Page not found")
		h.el("p", "The page you are looking for does not exist.")
		h.el("a", "Back to home", "class", "button", "href", opts.Href("/"))
		h.close("div")
		h.close("section")
	}))
}

func telephone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, phone)
}
