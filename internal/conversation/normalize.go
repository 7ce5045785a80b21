package conversation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const detailTrigger = "quero saber mais"

var detailTriggerWords = len(strings.Fields(detailTrigger))

var closingPhrases = map[string]bool{
	"nao obrigado": true,
	"nao obrigada": true,
	"nao valeu":    true,
}

// Connectors customers put between the trigger and the model name, compared normalized.
var triggerConnectors = map[string]bool{"sobre": true, "do": true, "da": true, "o": true, "a": true}

// Normalize lowercases s, folds accents and turns punctuation into single spaces.
func Normalize(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

// IsClosing reports whether normalized text ends the conversation.
func IsClosing(normalized string) bool {
	return closingPhrases[normalized]
}

// DetailTrigger extracts the model name from "quero saber mais <model>". The trigger is
// matched on the normalized text; the model keeps its original spelling ("HR-V", "Citroën")
// with only surrounding punctuation trimmed.
func DetailTrigger(text string) (string, bool) {
	normalized := Normalize(text)
	if !strings.HasPrefix(normalized, detailTrigger+" ") {
		return "", false
	}

	words := strings.Fields(text)
	i, consumed := 0, 0
	for ; i < len(words) && consumed < detailTriggerWords; i++ {
		consumed += len(strings.Fields(Normalize(words[i])))
	}
	if consumed != detailTriggerWords {
		// the trigger ran into the model inside one word, e.g. "mais,HR-V"
		return "", false
	}
	// at most "sobre o"
	for n := 0; n < 2 && i < len(words) && triggerConnectors[Normalize(words[i])]; n++ {
		i++
	}

	model := strings.TrimFunc(strings.Join(words[i:], " "), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return model, model != ""
}
