// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// CSVHeader returns the Google Ads Editor bulk-upload columns.
func CSVHeader() []string {
	h := []string{"Campaign", "Ad group"}
	for i := 1; i <= TitleCount; i++ {
		h = append(h, fmt.Sprintf("Headline %d", i))
	}
	for i := 1; i <= DescriptionCount; i++ {
		h = append(h, fmt.Sprintf("Description %d", i))
	}
	return append(h, "Path 1", "Path 2", "Final URL")
}

// WriteCSV writes one row per ad. Missing titles or descriptions leave
// their cells empty.
func WriteCSV(w io.Writer, list []Ad) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return fmt.Errorf("ads csv header: %w", err)
	}

	for _, ad := range list {
		row := []string{ad.CampaignName, ad.AdGroupName}
		row = append(row, padded(ad.Titles, TitleCount)...)
		row = append(row, padded(ad.Descriptions, DescriptionCount)...)
		row = append(row, ad.Path1, ad.Path2, ad.FinalURL)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ads csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the ads as an indented JSON array.
func WriteJSON(w io.Writer, list []Ad) error {
	if list == nil {
		list = []Ad{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func padded(in []string, n int) []string {
	out := make([]string, n)
	copy(out, in)
	return out
}
