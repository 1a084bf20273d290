// Package data embeds the language profile tables, the pronunciation
// dictionary and the common-word lexicon.
package data

import _ "embed"

//go:embed profiles.yaml
var Profiles []byte

//go:embed pronounce.txt
var Pronunciations []byte

//go:embed lexicon.yaml
var Lexicon []byte
