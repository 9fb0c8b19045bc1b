// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"

	"promptdeck/internal/catalog"
)

// Build assembles the website-generation prompt from a validated form.
// Sections are emitted in a fixed order and optional sections are skipped
// entirely when their inputs are empty, so identical forms always produce
// identical prompts.
func Build(f *WebsiteForm) string {
	var b strings.Builder

	b.WriteString("Create a complete, production-ready website for \"")
	b.WriteString(strings.TrimSpace(f.ProjectName))
	b.WriteString("\".\n\n")

	section(&b, "Business description", strings.TrimSpace(f.BusinessDescription))
	if aud := strings.TrimSpace(f.TargetAudience); aud != "" {
		section(&b, "Target audience", aud)
	}

	var design []string
	design = append(design, "Style: "+catalog.MustLookup(catalog.DesignStyles).LabelFor(f.DesignStyle))
	if f.Layout != "" {
		design = append(design, "Layout: "+catalog.MustLookup(catalog.Layouts).LabelFor(f.Layout))
	}
	if f.ColorScheme != "" {
		design = append(design, "Color scheme: "+catalog.MustLookup(catalog.ColorSchemes).LabelFor(f.ColorScheme))
	}
	fonts := catalog.MustLookup(catalog.Fonts)
	typo := "Typography: " + fonts.LabelFor(f.PrimaryFont) + " for headings and body"
	if f.SecondaryFont != "" && f.SecondaryFont != f.PrimaryFont {
		typo = "Typography: " + fonts.LabelFor(f.PrimaryFont) + " for headings, " +
			fonts.LabelFor(f.SecondaryFont) + " for body text"
	}
	design = append(design, typo)
	if f.Borders != "" {
		design = append(design, "Borders: "+catalog.MustLookup(catalog.Borders).LabelFor(f.Borders))
	}
	listSection(&b, "Design", design)

	if len(f.Animations) > 0 {
		listSection(&b, "Animations", catalog.MustLookup(catalog.Animations).Labels(f.Animations))
	}

	if len(f.Pages) > 0 {
		pages := make([]string, 0, len(f.Pages))
		for _, p := range f.Pages {
			pages = append(pages, strings.TrimSpace(p))
		}
		listSection(&b, "Pages", pages)
	}

	if f.IncludeVideo {
		listSection(&b, "Background video", []string{
			"Use a full-width, muted, looping background video in the hero section",
			"Video content: " + strings.TrimSpace(f.VideoDescription),
			"Provide a static poster image fallback and pause the video when prefers-reduced-motion is set",
		})
	}

	var features []string
	if f.ResponsiveDesign {
		features = append(features, "Fully responsive layout (mobile-first, tested at 360px, 768px and 1280px)")
	}
	if f.DarkModeToggle {
		features = append(features, "Light/dark mode toggle that remembers the visitor's choice")
	}
	if len(features) > 0 {
		listSection(&b, "Features", features)
	}

	if len(f.SEO) > 0 {
		listSection(&b, "SEO requirements", catalog.MustLookup(catalog.SEO).Labels(f.SEO))
	}
	if len(f.Performance) > 0 {
		listSection(&b, "Performance requirements", catalog.MustLookup(catalog.Performance).Labels(f.Performance))
	}

	if notes := strings.TrimSpace(f.AdditionalNotes); notes != "" {
		section(&b, "Additional notes", notes)
	}

	b.WriteString("Deliver clean, semantic HTML, CSS and JavaScript with comments where the structure is not obvious.")
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(title)
	b.WriteString(":\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

func listSection(b *strings.Builder, title string, items []string) {
	b.WriteString(title)
	b.WriteString(":\n")
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
