package site

import (
	"github.com/a-h/templ"

	"github.com/tareeqi/tareeqweb/internal/form"
)

func hero(h *html, title, subtitle string) {
	h.open("section", "class", "hero")
	h.open("div", "class", "container hero-inner")
	h.el("h1", title)
	h.el("p", subtitle, "class", "lead")
	h.close("div")
	h.close("section")
}

func homeBody(opts Options, state *form.State) templ.Component {
	return component(func(h *html) {
		h.open("section", "class", "hero hero-home")
		h.open("div", "class", "container hero-inner")

		h.open("div", "class", "hero-badge")
		h.open("img", "src", opts.Href("/logo.png"), "alt", "Tareeqi Logo", "width", "50", "height", "50")
		h.el("span", "tareeqi")
		h.close("div")

		h.open("div", "class", "phones")
		h.open("img", "src", opts.Href("/phone1.png"), "alt", "Tareeqi App Dashboard", "class", "phone phone-left")
		h.open("img", "src", opts.Href("/phone3.png"), "alt", "Tareeqi App Road Analysis", "class", "phone phone-right")
		h.close("div")

		h.el("span", "REVOLUTIONARY", "class", "eyebrow")
		h.el("h1", "TAREEQI")
		h.el("h2", "ROAD MONITORING APP")
		h.el("p", "JOIN THE BETA PROGRAM", "class", "lead")

		h.open("div", "class", "card form-card")
		h.render(FormView(opts, state, form.KindBeta))
		h.close("div")

		h.close("div")
		h.close("section")

		h.open("section", "class", "section")
		h.open("div", "class", "container grid grid-3")
		for _, f := range features[:3] {
			h.open("article", "class", "card")
			h.el("h3", f.Title)
			h.el("p", f.Description)
			h.close("article")
		}
		h.close("div")
		h.open("div", "class", "container center")
		h.el("a", "Explore all features", "class", "button", "href", opts.Href("/features/"))
		h.close("div")
		h.close("section")
	})
}

func featuresBody(opts Options, _ *form.State) templ.Component {
	return component(func(h *html) {
		hero(h, "Features", "Everything Tareeqi does to keep roads safe, from the sensor in your pocket to the city dashboard.")

		h.open("section", "class", "section")
		h.open("div", "class", "container grid grid-3")
		for _, f := range features {
			h.open("article", "class", "card feature")
			h.el("h3", f.Title)
			h.el("p", f.Description)
			h.raw("<ul>")
			for _, d := range f.Details {
				h.el("li", d)
			}
			h.raw("</ul>")
			h.close("article")
		}
		h.close("div")
		h.close("section")

		h.open("section", "class", "section section-alt")
		h.open("div", "class", "container")
		h.el("h2", "Benefits")
		h.open("div", "class", "grid grid-3")
		for _, b := range benefits {
			h.open("article", "class", "card")
			h.el("h3", b.Title)
			h.raw("<ul>")
			for _, d := range b.Details {
				h.el("li", d)
			}
			h.raw("</ul>")
			h.close("article")
		}
		h.close("div")
		h.close("div")
		h.close("section")
	})
}

func howItWorksBody(opts Options, _ *form.State) templ.Component {
	return component(func(h *html) {
		hero(h, "How TAREEQI Works", "A revolutionary approach to road monitoring using AI and community input")

		h.open("section", "class", "section")
		h.open("div", "class", "container steps")
		for _, s := range steps {
			h.open("article", "class", "step")
			h.open("img", "src", opts.Href(s.Image), "alt", s.Title, "loading", "lazy")
			h.open("div", "class", "step-text")
			h.el("h2", s.Title)
			h.el("p", s.Text)
			h.close("div")
			h.close("article")
		}
		h.close("div")

		h.open("div", "class", "container card summary")
		h.el("h3", "Summary")
		h.el("p", howItWorksSummary)
		h.close("div")
		h.close("section")
	})
}

func aboutBody(opts Options, _ *form.State) templ.Component {
	return component(func(h *html) {
		hero(h, "About Us", "Meet the team behind Tareeqi")

		h.open("section", "class", "section")
		h.open("div", "class", "container narrow")
		h.el("h2", "Our Mission")
		h.el("p", mission, "class", "lead")
		h.close("div")
		h.close("section")

		h.open("section", "class", "section section-alt")
		h.open("div", "class", "container")
		h.el("h2", "Our Team")
		h.open("div", "class", "grid grid-5 team")
		for _, m := range team {
			h.open("figure", "class", "card member")
			h.open("img", "src", opts.Href(m.Image), "alt", m.Name, "loading", "lazy")
			h.raw("<figcaption>")
			h.el("strong", m.Name)
			h.el("span", m.Role)
			h.raw("</figcaption>")
			h.close("figure")
		}
		h.close("div")
		h.close("div")
		h.close("section")

		h.open("section", "class", "section")
		h.open("div", "class", "container")
		h.el("h2", "Our Values")
		h.open("div", "class", "grid grid-4")
		for _, v := range values {
			h.open("article", "class", "card")
			h.el("h3", v.Title)
			h.el("p", v.Description)
			h.close("article")
		}
		h.close("div")
		h.close("div")
		h.close("section")
	})
}

func contactBody(opts Options, state *form.State) templ.Component {
	return component(func(h *html) {
		hero(h, "Contact Us", "Get in touch with our team or join our beta program")

		h.open("section", "class", "section")
		h.open("div", "class", "container grid grid-2")

		h.open("div", "class", "card form-card")
		title := "Send us a message"
		if state.Values().Kind == form.KindBeta {
			title = "Join Beta Program"
		}
		h.el("h2", title)
		h.render(FormView(opts, state, ""))
		h.close("div")

		h.open("div", "class", "contact-info")
		h.open("div", "class", "card")
		h.el("h2", "Contact Information")
		h.open("dl")
		h.el("dt", "Email")
		h.open("dd")
		h.el("a", opts.SupportEmail, "href", "mailto:"+opts.SupportEmail)
		h.close("dd")
		h.el("dt", "Phone")
		h.open("dd")
		h.el("a", opts.SupportPhone, "href", "tel:"+telephone(opts.SupportPhone))
		h.close("dd")
		h.el("dt", "Location")
		h.open("dd")
		for i, line := range location {
			if i > 0 {
				h.raw("<br>")
			}
			h.text(line)
		}
		h.close("dd")
		h.close("dl")
		h.close("div")

		h.open("div", "class", "card")
		h.el("h2", "Find Us")
		h.open("iframe",
			"src", mapEmbedURL,
			"title", "Jouf University map",
			"width", "100%",
			"height", "300",
			"loading", "lazy",
			"referrerpolicy", "no-referrer-when-downgrade",
			"allowfullscreen", "")
		h.close("iframe")
		h.close("div")
		h.close("div")

		h.close("div")
		h.close("section")
	})
}
