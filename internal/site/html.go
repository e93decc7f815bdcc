package site

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html writes markup and remembers the first error, so components can be
// written as straight-line code.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

func (h *html) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs alternate name and value; an empty name
// writes nothing and a value of "" for a known boolean attribute writes the
// bare name.
func (h *html) open(tag string, attrs ...string) {
	h.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if name == "" {
			continue
		}
		if value == "" && booleanAttrs[name] {
			h.raw(" ", name)
			continue
		}
		h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</", tag, ">")
}

// el writes an element holding escaped text.
func (h *html) el(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

var booleanAttrs = map[string]bool{
	"disabled":        true,
	"hidden":          true,
	"required":        true,
	"selected":        true,
	"allowfullscreen": true,
}

// when returns name if cond holds, so optional attributes can be written
// inline.
func when(cond bool, name string) string {
	if cond {
		return name
	}
	return ""
}

func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err
	})
}
