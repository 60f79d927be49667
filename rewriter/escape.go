package rewriter

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// specials are replaced before anything else. Quotes and backquotes become
// typographic quote macros so they cannot close the leaf quoting.
var specials = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'#':  `\#`,
	'%':  `\%`,
	'_':  `\_`,
	'^':  `\textasciicircum{}`,
	'~':  `\textasciitilde{}`,
	'\'': `\textquoteright{}`,
	'`':  `\textquoteleft{}`,

	'’':      `\textquoteright{}`,
	'‘':      `\textquoteleft{}`,
	'“':      `\textquotedblleft{}`,
	'”':      `\textquotedblright{}`,
	'—':      `\textemdash{}`,
	'–':      `\textendash{}`,
	'…':      `\ldots{}`,
	'«':      `\guillemotleft{}`,
	'»':      `\guillemotright{}`,
	'€':      `\texteuro{}`,
	'£':      `\pounds{}`,
	'©':      `\textcopyright{}`,
	'°':      `\textdegree{}`,
	'§':      `\S{}`,
	'¡':      `\textexclamdown{}`,
	'¿':      `\textquestiondown{}`,
	'ß':      `\ss{}`,
	'æ':      `\ae{}`,
	'Æ':      `\AE{}`,
	'ø':      `\o{}`,
	'Ø':      `\O{}`,
	'œ':      `\oe{}`,
	'Œ':      `\OE{}`,
	'ı':      `\i{}`,
	'\u00a0': `~`,
}

// accents maps combining marks to TeX accent commands.
var accents = map[rune]string{
	'\u0300': "\\`", // grave
	'\u0301': `\'`,  // acute
	'\u0302': `\^`,  // circumflex
	'\u0303': `\~`,  // tilde
	'\u0304': `\=`,  // macron
	'\u0306': `\u`,  // breve
	'\u0307': `\.`,  // dot above
	'\u0308': `\"`,  // diaeresis
	'\u030A': `\r`,  // ring
	'\u030B': `\H`,  // double acute
	'\u030C': `\v`,  // caron
	'\u0327': `\c`,  // cedilla
	'\u0328': `\k`,  // ogonek
}

// LaTeXQuote escapes s for use as parsetree leaf text. Accented letters are
// decomposed and written with accent commands; runes with no TeX spelling
// are kept as they are.
func LaTeXQuote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range norm.NFC.String(s) {
		if macro, ok := specials[r]; ok {
			sb.WriteString(macro)
			continue
		}

		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}

		if accented, ok := accentMacro(r); ok {
			sb.WriteString(accented)
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// accentMacro spells an accented letter as nested accent commands, e.g.
// "é" as \'{e}.
func accentMacro(r rune) (string, bool) {
	decomposed := []rune(norm.NFD.String(string(r)))
	if len(decomposed) < 2 || decomposed[0] >= 0x80 {
		return "", false
	}

	result := string(decomposed[0])

	for _, mark := range decomposed[1:] {
		command, ok := accents[mark]
		if !ok {
			return "", false
		}

		result = command + "{" + result + "}"
	}

	return result, true
}
