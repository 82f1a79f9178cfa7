// Package ui renders findings and asks the user what to do with them.
//
// A [Prompter] is a review.Decider backed by a line-oriented reader, so the
// same code drives a real terminal and a test buffer. Styling comes from
// lipgloss; with the "none" theme (or when output is not a terminal and the
// theme is "auto") everything is rendered as plain text.
package ui
