// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package table

// Glyphs is one border character set. Fields are named by position:
// T/M/B for top/middle/bottom rule, L/C/R for left/junction/right.
type Glyphs struct {
	H string // horizontal rule segment
	V string // vertical separator

	TL, TC, TR string
	ML, MC, MR string
	BL, BC, BR string
}

// ASCII renders with +, - and |, safe for any terminal and for the
// export file.
var ASCII = Glyphs{
	H: "-", V: "|",
	TL: "+", TC: "+", TR: "+",
	ML: "+", MC: "+", MR: "+",
	BL: "+", BC: "+", BR: "+",
}

// Box renders with Unicode box-drawing characters.
var Box = Glyphs{
	H: "─", V: "│",
	TL: "┌", TC: "┬", TR: "┐",
	ML: "├", MC: "┼", MR: "┤",
	BL: "└", BC: "┴", BR: "┘",
}

// GlyphsByName maps a config value to a glyph set. Unknown names fall
// back to ASCII, the conservative choice.
func GlyphsByName(name string) Glyphs {
	if name == "box" {
		return Box
	}
	return ASCII
}
