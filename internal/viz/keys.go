package viz

import (
	"strings"
	"unicode"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Terminals report no key-up events and no bare shift presses. A capital
// letter is read as the letter plus the shift key on the typing hand's side.
const rightHand = "yuiophjklnm"

// ButtonsForKey translates a bubbletea key string into the logical buttons
// it holds.
func ButtonsForKey(key string) []dynamo.Button {
	switch key {
	case "up", "down", "left", "right":
		return []dynamo.Button{dynamo.Button(key)}
	case "shift+up", "shift+down", "shift+left", "shift+right":
		return []dynamo.Button{dynamo.Button(strings.TrimPrefix(key, "shift+")), "rshift"}
	}

	r := []rune(key)
	if len(r) != 1 || !unicode.IsLetter(r[0]) && !unicode.IsDigit(r[0]) {
		return nil
	}
	if !unicode.IsUpper(r[0]) {
		return []dynamo.Button{dynamo.Button(key)}
	}

	lower := unicode.ToLower(r[0])
	shift := dynamo.Button("lshift")
	if strings.ContainsRune(rightHand, lower) {
		shift = "rshift"
	}
	return []dynamo.Button{dynamo.Button(string(lower)), shift}
}
