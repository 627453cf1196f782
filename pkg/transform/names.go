package transform

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var validate = validator.New()

// NormalizeName canonicalizes a person's name for comparison: Unicode NFC,
// case folded, trimmed, inner whitespace collapsed.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// SquashName removes every non letter/digit from a normalized name, so that
// "Mary-Jane O'Neil" and "maryjane oneil" compare equal.
func SquashName(s string) string {
	var b strings.Builder
	for _, r := range NormalizeName(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FirstName returns the first token of the normalized name.
func FirstName(s string) string {
	n := NormalizeName(s)
	if i := strings.IndexByte(n, ' '); i >= 0 {
		return n[:i]
	}
	return n
}

func NormalizeEmail(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "mailto:"), "MAILTO:")
	return strings.ToLower(s)
}

// IsEmail reports whether s, after normalization, is a syntactically valid
// address.
func IsEmail(s string) bool {
	s = NormalizeEmail(s)
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}

// PlaceholderEmail derives a deterministic stand-in address from a name, e.g.
// "Zoë Smith" → "zoe.smith@<domain>". Tokens with letters outside ASCII
// ("علی", "李") contribute a hash of the whole name instead, so distinct names
// never share an address. Names without letters or digits map to
// "unknown@<domain>".
func PlaceholderEmail(name, domain string) string {
	var parts []string
	lossy := false
	for _, tok := range strings.Fields(NormalizeName(name)) {
		p := asciiToken(tok)
		switch {
		case p != "":
			parts = append(parts, p)
		case SquashName(tok) != "":
			lossy = true
		}
	}
	if lossy {
		sum := uuid.NewSHA1(placeholderNamespace, []byte(SquashName(name)))
		hash := strings.ReplaceAll(sum.String(), "-", "")[:12]
		if len(parts) == 0 {
			parts = append(parts, "member")
		}
		parts = append(parts, hash)
	}
	local := strings.Join(parts, ".")
	if local == "" {
		local = "unknown"
	}
	return local + "@" + strings.ToLower(strings.TrimSpace(domain))
}

var placeholderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("camp-seed/placeholder-email"))

// IsPlaceholderEmail reports whether email was produced by PlaceholderEmail
// for domain.
func IsPlaceholderEmail(email, domain string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return domain != "" && strings.HasSuffix(NormalizeEmail(email), "@"+domain)
}

func asciiToken(tok string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(tok) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
