package formulas

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale holds the separators used to read and write numbers.
type Locale struct {
	// Tag is the language the separators were derived from. It is
	// language.Und for separators given explicitly.
	Tag language.Tag
	// Decimal separates the integer and fractional parts of a number.
	Decimal rune
	// Group separates groups of digits in the integer part. It is 0 if the
	// locale does not group digits.
	Group rune
}

// DefaultLocale is the locale used when none is given: English, with . for the
// decimal separator and , for grouping.
var DefaultLocale = Locale{Tag: language.English, Decimal: '.', Group: ','}

// probe is formatted in a locale to find its separators. It has enough integer
// digits to be grouped even in locales that require two digits in the
// leading group.
const probe = 1234567.5

// LocaleFor derives the separators for a language by formatting a number in
// it. If the formatted number does not reveal a decimal separator, the result
// uses the separators of DefaultLocale.
func LocaleFor(tag language.Tag) Locale {
	p := message.NewPrinter(tag)
	s := p.Sprintf("%v", number.Decimal(probe, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	var seps []rune
	for _, r := range s {
		if unicode.IsDigit(r) || r == '\u200e' || r == '\u200f' {
			// Skip digits in any script and directional marks.
			continue
		}
		seps = append(seps, r)
	}
	l := Locale{Tag: tag}
	switch len(seps) {
	case 0:
		l.Decimal, l.Group = DefaultLocale.Decimal, DefaultLocale.Group
	case 1:
		l.Decimal = seps[0]
	default:
		l.Decimal = seps[len(seps)-1]
		l.Group = seps[0]
	}
	if l.Group == l.Decimal {
		l.Group = 0
	}
	return l
}

func (l Locale) isDecimal(r rune) bool {
	return r == l.Decimal
}

func (l Locale) isGroup(r rune) bool {
	return l.Group != 0 && r == l.Group
}

// ParseFloat parses a number written with the locale's separators. Group
// separators and whitespace are ignored wherever they appear.
func (l Locale) ParseFloat(s string) (float64, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case l.isGroup(r), unicode.IsSpace(r):
			// Dropped.
		case l.isDecimal(r):
			b.WriteByte('.')
		case r == '.':
			// A literal . that is not this locale's decimal separator must
			// not be mistaken for one.
			b.WriteByte('!')
		default:
			b.WriteRune(r)
		}
	}
	return strconv.ParseFloat(b.String(), 64)
}

// FormatFloat formats v with the locale's decimal separator, using the fewest
// digits that read back as exactly v. Digits are not grouped. Values from 1e-4
// up to 1e21 in magnitude are written without an exponent and can be read by
// ParseFloat and Tokenize.
func (l Locale) FormatFloat(v float64) string {
	s := formatFloat(v)
	if l.Decimal == '.' || l.Decimal == 0 {
		return s
	}
	return strings.Replace(s, ".", string(l.Decimal), 1)
}

// Option is an option for tokenizing and evaluating expressions.
type Option interface {
	option(evalctx) evalctx
}

// evalctx holds the settings for one evaluation.
type evalctx struct {
	loc Locale
}

func newctx(opts []Option) evalctx {
	c := evalctx{loc: DefaultLocale}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

type localeopt Locale

func (o localeopt) option(c evalctx) evalctx {
	c.loc = Locale(o)
	return c
}

// WithLocale reads numbers with the separators of the given language.
func WithLocale(tag language.Tag) Option {
	return localeopt(LocaleFor(tag))
}

// WithSeparators reads numbers with explicit separators. Pass 0 for group to
// disallow grouping. Panics if decimal is 0, if the separators are equal, or
// if either is a digit, an operator, a bracket, or whitespace.
func WithSeparators(decimal, group rune) Option {
	check := func(r rune) {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune("+-*/()", r) {
			panic("formulas: invalid separator " + strconv.QuoteRune(r))
		}
	}
	if decimal == 0 || decimal == group {
		panic("formulas: invalid decimal separator " + strconv.QuoteRune(decimal))
	}
	check(decimal)
	if group != 0 {
		check(group)
	}
	return localeopt(Locale{Tag: language.Und, Decimal: decimal, Group: group})
}

// UseLocale reads numbers with the separators of l, e.g. a Locale from a
// previous Formula.
func UseLocale(l Locale) Option {
	return localeopt(l)
}

// LocaleNamed looks up the locale for a BCP 47 tag like "de-AT" or a POSIX
// locale name like "de_AT.UTF-8". The empty string and the POSIX names "C" and
// "POSIX" give DefaultLocale.
func LocaleNamed(name string) (Locale, error) {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return DefaultLocale, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return Locale{}, err
	}
	return LocaleFor(tag), nil
}
