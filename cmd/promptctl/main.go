// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command promptctl builds and splits PromptDeck prompts offline.
package main

import "promptdeck/internal/cli"

func main() {
	cli.Execute()
}
