// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"fmt"
	"strings"
)

// maxVariant bounds the numbered fallback variants ("Shop Online Today 2").
const maxVariant = 99

var keywordTitles = []string{
	"%s",
	"Best %s",
	"Top %s Deals",
	"%s Online",
	"Shop %s Today",
	"Buy %s Now",
	"Quality %s",
	"Affordable %s",
	"%s Experts",
	"Trusted %s",
	"%s Near You",
	"Get %s Today",
	"%s Sale",
	"Premium %s",
	"%s Made Easy",
	"Discover %s",
	"%s Specialists",
	"Compare %s",
	"%s Offers",
	"Fast %s Service",
}

var genericTitles = []string{
	"Official Site",
	"Shop Online Today",
	"Free Shipping Available",
	"Great Prices Every Day",
	"Order Online Now",
	"Fast Delivery",
	"Top Rated Service",
	"Satisfaction Guaranteed",
	"Exclusive Online Offers",
	"Book a Consultation",
	"Limited Time Offer",
	"Save More Today",
	"Browse Our Collection",
	"Expert Advice Available",
	"New Arrivals Weekly",
}

var keywordDescriptions = []string{
	"Discover our range of %s. Quality you can trust at prices you will love.",
	"Looking for %s? Browse our selection and order online today.",
	"Get the best %s with fast delivery and friendly support.",
	"Compare %s options and find the perfect fit for your needs.",
	"Trusted by thousands of customers. Shop %s with confidence today.",
	"Save on %s this week. Limited stock, so order while it lasts.",
}

var genericDescriptions = []string{
	"Fast, reliable service from a team that cares. Contact us today.",
	"Browse our full collection online and find exactly what you need.",
	"Great value, honest prices and support whenever you need it.",
	"Order online in minutes. Secure checkout and quick delivery.",
	"Join thousands of happy customers. See why people choose us.",
	"Expert help at every step. Get in touch for a free quote.",
}

// candidates yields filler text for field in a fixed order: keyword
// templates, then generic lines, then numbered generic variants. The
// sequence is finite; yield returning false stops it early.
func candidates(field Field, keywords []string, yield func(string) bool) {
	kwTemplates, generic := keywordTitles, genericTitles
	if field == FieldDescription {
		kwTemplates, generic = keywordDescriptions, genericDescriptions
	}

	for _, tpl := range kwTemplates {
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			if field == FieldTitle {
				kw = titleCase(kw)
			} else {
				kw = strings.ToLower(kw)
			}
			if !yield(fmt.Sprintf(tpl, kw)) {
				return
			}
		}
	}
	for _, g := range generic {
		if !yield(g) {
			return
		}
	}
	for n := 2; n <= maxVariant; n++ {
		for _, g := range generic {
			if !yield(fmt.Sprintf("%s %d", g, n)) {
				return
			}
		}
	}
}
