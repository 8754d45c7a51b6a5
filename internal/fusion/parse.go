package fusion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vdeh-bibliothek/bibfusion/internal/record"
)

// Choice is the parsed arbitration decision.
type Choice struct {
	Variant record.VariantKey // empty when None
	None    bool
	Reason  string
}

// choiceSeparators are the characters allowed directly after the chosen
// letter. Anything else (in particular a second letter) makes the
// response ambiguous, and ambiguity resolves to NONE rather than a
// guess.
const choiceSeparators = " -–:.\n\t&)"

// ParseChoice parses a free-text arbitration response into a variant
// choice. The contract is a single leading letter or a NONE token,
// optionally followed by a justification after a separator. Parsing
// tolerates whitespace and formatting variance but never guesses:
// empty, garbled or ambiguous responses all resolve to NONE with a
// descriptive reason.
func ParseChoice(response string) Choice {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return Choice{None: true, Reason: "keine Antwort vom Arbitrationsdienst"}
	}

	upper := strings.ToUpper(trimmed)

	// The original German answer contract uses KEINE; accept the English
	// token as well.
	for _, token := range []string{"KEINE", "KEIN", "NONE"} {
		if strings.HasPrefix(upper, token) {
			reason := extractReason(trimmed)
			if reason == "" {
				reason = "keine Variante passt"
			}
			return Choice{None: true, Reason: reason}
		}
	}

	letter := upper[:1]
	if letter >= "A" && letter <= "F" {
		// Decode the rune after the letter; the separator set contains
		// multibyte characters.
		next, _ := utf8.DecodeRuneInString(trimmed[1:])
		if len(trimmed) == 1 || strings.ContainsRune(choiceSeparators, next) {
			key, _ := record.VariantForLetter(letter)
			return Choice{Variant: key, Reason: extractReason(trimmed)}
		}
	}

	return Choice{None: true, Reason: fmt.Sprintf("unklare Antwort: %s", truncate(trimmed, 120))}
}

// extractReason returns the justification after the separator dash, or
// everything after the leading token when no dash separates the answer.
// Only a free-standing dash or one directly after the leading letter
// counts as a separator; hyphens inside words stay part of the reason.
func extractReason(response string) string {
	for _, sep := range []string{" - ", " – "} {
		if idx := strings.Index(response, sep); idx >= 0 {
			return strings.TrimSpace(response[idx+len(sep):])
		}
	}
	if len(response) > 1 {
		if r, size := utf8.DecodeRuneInString(response[1:]); r == '-' || r == '–' {
			return strings.TrimSpace(response[1+size:])
		}
	}
	fields := strings.Fields(response)
	if len(fields) > 1 {
		return strings.TrimSpace(strings.Join(fields[1:], " "))
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
