package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/pool"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

func newRule(pattern, repl string) rule {
	return rule{re: regexp.MustCompile(pattern), repl: repl}
}

func apply(rules []rule, text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

var (
	startingQuotes = []rule{
		newRule("([«“‘„]|[`]+)", " ${1} "),
		newRule(`^"`, "``"),
		newRule("(``)", " ${1} "),
		newRule(`([ (\[{<])("|'{2})`, "${1} `` "),
	}

	punctuation = []rule{
		newRule(`([^\.])(\.)([\]\)}>"']*)\s*$`, "${1} ${2} ${3} "),
		newRule(`([:,])([^\d])`, " ${1} ${2}"),
		newRule(`([:,])$`, " ${1} "),
		newRule(`\.{2,}`, " ${0} "),
		newRule(`[;@#$%&]`, " ${0} "),
		newRule(`([^\.])(\.)([\]\)}>"']*)\s*$`, "${1} ${2}${3} "),
		newRule(`[?!]`, " ${0} "),
		newRule(`([^'])' `, "${1} ' "),
		newRule(`[*]`, " ${0} "),
		newRule(`[\]\[\(\)\{\}<>]`, " ${0} "),
		newRule(`--`, " -- "),
	}

	endingQuotes = []rule{
		newRule(`([»”’])`, " ${1} "),
		newRule(`''`, " '' "),
		newRule(`"`, " '' "),
		newRule(`([^' ])('[sS]|'[mM]|'[dD]|') `, "${1} ${2} "),
		newRule(`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `, "${1} ${2} "),
	}

	contractions = []rule{
		newRule(`(?i)\b(can)(not)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(d)('ye)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(gim)(me)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(gon)(na)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(got)(ta)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(lem)(me)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(more)('n)\b`, " ${1} ${2} "),
		newRule(`(?i)\b(wan)(na)(\s)`, " ${1} ${2} ${3}"),
		newRule(`(?i) ('t)(is)\b`, " ${1} ${2} "),
		newRule(`(?i) ('t)(was)\b`, " ${1} ${2} "),
	}
)

// abbreviations never end a sentence when followed by a period.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "sr": true, "jr": true,
	"st": true, "vs": true, "etc": true, "inc": true, "ltd": true, "co": true, "corp": true,
	"no": true, "gen": true, "gov": true, "sen": true, "rep": true, "lt": true, "col": true,
	"sgt": true, "capt": true, "mt": true, "ft": true, "jan": true, "feb": true, "mar": true,
	"apr": true, "aug": true, "sept": true, "oct": true, "nov": true, "dec": true,
}

// TreebankTokenizer lowercases text and splits it into Penn Treebank style
// word and punctuation tokens, sentence by sentence.
type TreebankTokenizer struct {
	casers *pool.CaserPool
}

// NewTreebankTokenizer creates a tokenizer that is safe for concurrent use.
func NewTreebankTokenizer() ports.Tokenizer {
	return &TreebankTokenizer{casers: pool.NewLowerCaserPool()}
}

// Tokenize lowercases text and returns its tokens. Empty input yields an empty sequence.
func (t *TreebankTokenizer) Tokenize(text string) domain.TokenSequence {
	lowered := t.casers.String(text)
	tokens := domain.TokenSequence{}
	for _, sentence := range SplitSentences(lowered) {
		tokens = append(tokens, tokenizeSentence(sentence)...)
	}
	return tokens
}

func tokenizeSentence(text string) []string {
	text = apply(startingQuotes, text)
	text = splitOpeningApostrophe(text)
	text = apply(punctuation, text)
	text = " " + text + " "
	text = apply(endingQuotes, text)
	text = apply(contractions, text)
	return strings.FieldsFunc(text, isSpace)
}

// isSpace reports Unicode white space plus the ASCII separators U+001C to
// U+001F, which str.split also treats as white space.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitOpeningApostrophe separates an apostrophe from a following one-character
// word, unless that character starts a clitic ('m 't 's 'd 'n).
func splitOpeningApostrophe(text string) string {
	if !strings.ContainsRune(text, '\'') {
		return text
	}
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text) + 4)
	for i, r := range runes {
		sb.WriteRune(r)
		if r != '\'' || i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		if !isWordRune(next) || strings.ContainsRune("mtsdnMTSDN", next) {
			continue
		}
		if i+2 < len(runes) && isWordRune(runes[i+2]) {
			continue
		}
		sb.WriteRune(' ')
	}
	return sb.String()
}

// SplitSentences splits text after '.', '!' or '?' (plus any closing quotes or
// brackets) when followed by whitespace. Periods after initials, known
// abbreviations, dotted forms such as "u.s." and ellipses do not split.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		end := i + 1
		for end < len(text) && strings.IndexByte(`"')]}`, text[end]) >= 0 {
			end++
		}
		if end >= len(text) {
			break
		}
		if r, _ := utf8.DecodeRuneInString(text[end:]); !unicode.IsSpace(r) {
			continue
		}
		if c == '.' && ((i > 0 && text[i-1] == '.') || !endsSentence(text[start:i])) {
			continue
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = end
		i = end - 1
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func endsSentence(prefix string) bool {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return true
	}
	word := strings.TrimLeft(fields[len(fields)-1], "\"'([{`")
	if word == "" {
		return true
	}
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return !unicode.IsLetter(r)
	}
	if strings.Contains(word, ".") {
		return false
	}
	return !abbreviations[strings.ToLower(word)]
}
