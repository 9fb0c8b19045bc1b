// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

func init() {
	register(DesignStyles, "Design style", []Option{
		{"minimalist", "Minimalist"},
		{"modern", "Modern"},
		{"corporate", "Corporate"},
		{"brutalist", "Brutalist"},
		{"glassmorphism", "Glassmorphism"},
		{"neumorphism", "Neumorphism"},
		{"retro", "Retro / Vintage"},
		{"futuristic", "Futuristic"},
		{"editorial", "Editorial"},
		{"playful", "Playful"},
		{"luxury", "Luxury"},
		{"organic", "Organic / Natural"},
		{"cyberpunk", "Cyberpunk"},
		{"swiss", "Swiss / International"},
		{"material", "Material Design"},
		{"flat", "Flat Design"},
		{"dark_elegant", "Dark Elegant"},
		{"mystical", "Mystical / Esoteric"},
	})

	register(Fonts, "Font", []Option{
		{"inter", "Inter"},
		{"roboto", "Roboto"},
		{"open_sans", "Open Sans"},
		{"montserrat", "Montserrat"},
		{"poppins", "Poppins"},
		{"lato", "Lato"},
		{"playfair_display", "Playfair Display"},
		{"merriweather", "Merriweather"},
		{"raleway", "Raleway"},
		{"nunito", "Nunito"},
		{"source_serif", "Source Serif Pro"},
		{"space_grotesk", "Space Grotesk"},
		{"dm_sans", "DM Sans"},
		{"cormorant", "Cormorant Garamond"},
		{"cinzel", "Cinzel"},
		{"jetbrains_mono", "JetBrains Mono"},
	})

	register(ColorSchemes, "Color scheme", []Option{
		{"monochrome", "Monochrome"},
		{"blue_professional", "Professional blue"},
		{"earth_tones", "Earth tones"},
		{"pastel", "Pastel"},
		{"vibrant", "Vibrant / Saturated"},
		{"dark_mode", "Dark mode"},
		{"black_gold", "Black and gold"},
		{"purple_mystic", "Deep purple and silver"},
		{"green_nature", "Forest green"},
		{"sunset", "Sunset gradient"},
		{"ocean", "Ocean blues"},
		{"neon", "Neon on black"},
	})

	register(Animations, "Animation", []Option{
		{"fade_in", "Fade in on scroll"},
		{"slide_up", "Slide up on scroll"},
		{"parallax", "Parallax backgrounds"},
		{"hover_lift", "Lift on hover"},
		{"stagger", "Staggered list reveal"},
		{"typewriter", "Typewriter headline"},
		{"gradient_shift", "Animated gradient"},
		{"particles", "Floating particles"},
		{"marquee", "Marquee strip"},
		{"page_transition", "Page transitions"},
		{"counter", "Counting numbers"},
		{"glow_pulse", "Glow pulse"},
	})

	register(Borders, "Border style", []Option{
		{"none", "No borders"},
		{"subtle", "Subtle 1px"},
		{"rounded_sm", "Slightly rounded"},
		{"rounded_lg", "Large radius"},
		{"pill", "Pill shaped"},
		{"sharp", "Sharp corners"},
		{"double", "Double line"},
		{"gradient", "Gradient border"},
		{"ornamental", "Ornamental frame"},
	})

	register(Layouts, "Layout", []Option{
		{"single_page", "Single-page landing"},
		{"multi_page", "Multi-page site"},
		{"grid", "Card grid"},
		{"split_screen", "Split screen"},
		{"asymmetric", "Asymmetric"},
		{"magazine", "Magazine"},
		{"full_screen_sections", "Full-screen sections"},
		{"sidebar", "Sidebar navigation"},
	})

	register(SEO, "SEO", []Option{
		{"meta_tags", "Meta title and description"},
		{"open_graph", "Open Graph tags"},
		{"twitter_cards", "Twitter cards"},
		{"schema_org", "Schema.org structured data"},
		{"sitemap", "XML sitemap"},
		{"robots", "robots.txt"},
		{"canonical", "Canonical URLs"},
		{"semantic_html", "Semantic HTML5"},
		{"alt_text", "Descriptive image alt text"},
		{"hreflang", "hreflang for languages"},
	})

	register(Performance, "Performance", []Option{
		{"lazy_loading", "Lazy-load images"},
		{"webp", "WebP / AVIF images"},
		{"minify", "Minified CSS and JS"},
		{"critical_css", "Inline critical CSS"},
		{"font_display", "font-display: swap"},
		{"preload", "Preload key assets"},
		{"code_splitting", "Code splitting"},
		{"cdn", "Serve from a CDN"},
		{"caching", "Long-lived cache headers"},
		{"core_web_vitals", "Core Web Vitals budget"},
	})

	register(MatchTypes, "Keyword match type", []Option{
		{"broad", "Broad"},
		{"phrase", "Phrase"},
		{"exact", "Exact"},
	})
}
