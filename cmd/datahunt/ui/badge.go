package ui

import (
	"github.com/charmbracelet/lipgloss"

	"datahunt/internal/contacts"
)

// BadgeColor maps a badge class to its background colour.
func (s Styles) BadgeColor(b contacts.Badge) lipgloss.Color {
	switch b {
	case contacts.BadgeValid:
		return Success
	case contacts.BadgeAccept:
		return Warning
	case contacts.BadgeInvalid:
		return Destructive
	case contacts.BadgeSeamless:
		return SeamlessColor
	case contacts.BadgeSkrapp:
		return SkrappColor
	}
	return s.Theme.Muted
}

// RenderBadge renders text as a coloured badge. Empty text renders N/A.
func (s Styles) RenderBadge(b contacts.Badge, text string) string {
	if text == "" {
		return s.Muted.Render(contacts.NotAvailable)
	}
	return s.Badge.Background(s.BadgeColor(b)).Render(text)
}

// EmailBadge renders an email_validation value.
func (s Styles) EmailBadge(validation string) string {
	return s.RenderBadge(contacts.EmailBadge(validation), validation)
}

// SourceBadge renders a source_type value.
func (s Styles) SourceBadge(source string) string {
	return s.RenderBadge(contacts.SourceBadge(source), source)
}
