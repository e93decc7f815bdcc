package site

import (
	_ "embed"
)

//go:embed assets/site.css
var stylesheet []byte

// Stylesheet returns the site stylesheet.
func Stylesheet() []byte {
	return stylesheet
}
