// Package template renders notification templates into display-ready
// messages. A message template is ordinary text whose whitespace-separated
// words may embed `{key}` (plain substitution) and `!{key}` (emphasized
// substitution) placeholders; emphasis boundaries follow placeholder
// boundaries exactly.
package template

import "strings"

// DefaultIcon is used whenever the payload carries no icon override.
const DefaultIcon = "/assets/icons/notification-default.svg"

// Part is one run of message text. Consecutive same-emphasis pieces
// inside one word collapse into a single part; parts never span a word
// boundary.
type Part struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis"`
}

// Rendered is the display form of one notification.
type Rendered struct {
	Parts   []Part  `json:"parts"`
	Message string  `json:"message"`
	URL     *string `json:"url"`
	Icon    string  `json:"icon"`
}

// Render fills messageTemplate and urlTemplate from payload. A `{key}`
// absent from the payload substitutes the empty string; rendering never
// fails on template/payload drift.
func Render(messageTemplate string, urlTemplate *string, payload map[string]string) Rendered {
	var parts []Part
	var words []string

	for _, word := range strings.Fields(messageTemplate) {
		wordParts := renderWord(word, payload)
		parts = append(parts, wordParts...)

		var b strings.Builder
		for _, p := range wordParts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}

	var url *string
	if urlTemplate != nil {
		u := substitute(*urlTemplate, payload)
		url = &u
	}

	icon := payload["icon"]
	if icon == "" {
		icon = DefaultIcon
	}

	return Rendered{
		Parts:   parts,
		Message: strings.Join(words, " "),
		URL:     url,
		Icon:    icon,
	}
}

// renderWord splits one whitespace-free word into literal and
// placeholder segments, substituting as it goes.
func renderWord(word string, payload map[string]string) []Part {
	var parts []Part

	emit := func(text string, emphasis bool) {
		if text == "" {
			return
		}
		if n := len(parts); n > 0 && parts[n-1].Emphasis == emphasis {
			parts[n-1].Text += text
			return
		}
		parts = append(parts, Part{Text: text, Emphasis: emphasis})
	}

	i := 0
	for i < len(word) {
		// Literal run up to the next placeholder opener.
		j := i
		for j < len(word) {
			if word[j] == '{' {
				break
			}
			if word[j] == '!' && j+1 < len(word) && word[j+1] == '{' {
				break
			}
			j++
		}
		emit(word[i:j], false)
		if j >= len(word) {
			break
		}

		emphasis := false
		k := j
		if word[k] == '!' {
			emphasis = true
			k++
		}
		close := strings.IndexByte(word[k:], '}')
		if close < 0 {
			// Unbalanced brace: the rest of the word is literal.
			emit(word[j:], false)
			break
		}
		key := word[k+1 : k+close]
		emit(payload[key], emphasis)
		i = k + close + 1
	}

	return parts
}

// substitute performs `{key}` substitution only; the emphasis marker has
// no meaning in URL templates.
func substitute(s string, payload map[string]string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		open := strings.IndexByte(s[i:], '{')
		if open < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteString(s[i : i+open])
		close := strings.IndexByte(s[i+open:], '}')
		if close < 0 {
			b.WriteString(s[i+open:])
			break
		}
		key := s[i+open+1 : i+open+close]
		b.WriteString(payload[key])
		i += open + close + 1
	}
	return b.String()
}
