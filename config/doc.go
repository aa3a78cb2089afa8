// Package config describes an editor session in TOML: the initial state,
// the image mask and a script of actions to replay.
//
// A minimal session file:
//
//	output = "creative.png"
//	mask = "circle"
//
//	[state]
//	background = "#f7df1e"
//
//	[[actions]]
//	color = "#ff0000"
//
//	[[actions]]
//	upload = "~/Pictures/cake.jpg"
//
// Unknown keys are rejected, so a typo fails loudly instead of being
// ignored.
package config
