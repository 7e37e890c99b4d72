// Package blog downloads a web page and extracts its readable paragraph text.
package blog
