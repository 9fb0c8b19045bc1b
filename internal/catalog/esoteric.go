// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

func init() {
	register(EsotericElements, "Esoteric element", []Option{
		{"tarot", "Tarot cards"},
		{"zodiac", "Zodiac wheel"},
		{"moon_phases", "Moon phases"},
		{"sacred_geometry", "Sacred geometry"},
		{"crystals", "Crystals"},
		{"candles", "Candles"},
		{"runes", "Runes"},
		{"pentacle", "Pentacle"},
		{"third_eye", "Third eye"},
		{"chakras", "Chakras"},
		{"alchemy", "Alchemical symbols"},
		{"tree_of_life", "Tree of life"},
		{"ouroboros", "Ouroboros"},
		{"constellations", "Constellations"},
		{"incense", "Incense smoke"},
		{"crystal_ball", "Crystal ball"},
		{"hamsa", "Hamsa hand"},
		{"lotus", "Lotus flower"},
	})

	register(EsotericMoods, "Mood", []Option{
		{"mystical", "Mystical"},
		{"serene", "Serene"},
		{"dark", "Dark and ominous"},
		{"ethereal", "Ethereal"},
		{"celestial", "Celestial"},
		{"ancient", "Ancient"},
		{"dreamlike", "Dreamlike"},
		{"warm", "Warm candlelit"},
	})

	register(ImageSizes, "Image size", []Option{
		{"1024x1024", "Square 1024×1024"},
		{"1792x1024", "Landscape 1792×1024"},
		{"1024x1792", "Portrait 1024×1792"},
	})

	register(ImageQualities, "Image quality", []Option{
		{"standard", "Standard"},
		{"hd", "HD"},
	})

	register(ImageStyles, "Image style", []Option{
		{"vivid", "Vivid"},
		{"natural", "Natural"},
	})
}
