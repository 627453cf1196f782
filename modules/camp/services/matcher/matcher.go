package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/iota-uz/camp-sdk/pkg/transform"
)

// Identity is what the matcher hands back: enough to attach a record to a
// member and their enrollment for the season.
type Identity struct {
	MemberID         uuid.UUID
	EnrollmentID     uuid.UUID
	Email            string
	Name             string
	PlaceholderEmail bool
}

// Matcher resolves free-form names and emails to registered identities. It is
// filled by the roster import and read-only afterwards; it is not safe for
// concurrent use.
type Matcher struct {
	aliases    AliasTable
	byEmail    map[string]Identity
	byName     map[string][]Identity
	bySquashed map[string][]Identity
	byFirst    map[string][]Identity
	seen       map[uuid.UUID]struct{}
	names      []string
	warnings   []string
}

func New(aliases AliasTable) *Matcher {
	if aliases == nil {
		aliases = AliasTable{}
	}
	return &Matcher{
		aliases:    aliases,
		byEmail:    map[string]Identity{},
		byName:     map[string][]Identity{},
		bySquashed: map[string][]Identity{},
		byFirst:    map[string][]Identity{},
		seen:       map[uuid.UUID]struct{}{},
	}
}

// Register indexes id by email (unless it is a placeholder), full name,
// space-less name and first name. Registering the same member twice is a
// no-op.
func (m *Matcher) Register(id Identity) {
	if _, ok := m.seen[id.MemberID]; ok {
		return
	}
	m.seen[id.MemberID] = struct{}{}

	if email := transform.NormalizeEmail(id.Email); email != "" && !id.PlaceholderEmail {
		if _, taken := m.byEmail[email]; !taken {
			m.byEmail[email] = id
		}
	}
	name := transform.NormalizeName(id.Name)
	if name == "" {
		return
	}
	m.byName[name] = append(m.byName[name], id)
	m.bySquashed[transform.SquashName(name)] = append(m.bySquashed[transform.SquashName(name)], id)
	m.byFirst[transform.FirstName(name)] = append(m.byFirst[transform.FirstName(name)], id)
	m.names = append(m.names, name)
}

func (m *Matcher) Len() int {
	return len(m.seen)
}

// Resolve tries, in order: email (when input contains "@"), exact full name,
// alias, space-less name and finally a bare first name shared by exactly one
// member. A miss records a warning prefixed with context.
func (m *Matcher) Resolve(input, context string) (Identity, bool) {
	if strings.Contains(input, "@") {
		if id, ok := m.byEmail[transform.NormalizeEmail(input)]; ok {
			return id, true
		}
	}

	name := transform.NormalizeName(input)
	if name == "" {
		m.warnf("%s: unmatched name %q", context, strings.TrimSpace(input))
		return Identity{}, false
	}

	if hits := m.byName[name]; len(hits) > 0 {
		return m.pick(hits, input, context)
	}
	if canonical, ok := m.aliases.Lookup(name); ok {
		if hits := m.byName[canonical]; len(hits) > 0 {
			return m.pick(hits, input, context)
		}
	}
	if hits := m.bySquashed[transform.SquashName(name)]; len(hits) > 0 {
		return m.pick(hits, input, context)
	}
	if !strings.Contains(name, " ") {
		if hits := m.byFirst[name]; len(hits) > 0 {
			return m.pick(hits, input, context)
		}
	}

	msg := fmt.Sprintf("%s: unmatched name %q", context, strings.TrimSpace(input))
	if closest, ok := m.closest(name); ok {
		msg += fmt.Sprintf(" (closest: %q)", closest)
	}
	m.warnings = append(m.warnings, msg)
	return Identity{}, false
}

// ResolveByEmailOnly is the strict lookup for rows whose email column is
// trusted over the name.
func (m *Matcher) ResolveByEmailOnly(email, context string) (Identity, bool) {
	if id, ok := m.byEmail[transform.NormalizeEmail(email)]; ok {
		return id, true
	}
	m.warnf("%s: unmatched email %q", context, strings.TrimSpace(email))
	return Identity{}, false
}

// LookupEmail is the silent email index lookup used when an email column is
// only a hint and the name decides on a miss.
func (m *Matcher) LookupEmail(email string) (Identity, bool) {
	id, ok := m.byEmail[transform.NormalizeEmail(email)]
	return id, ok
}

// DrainWarnings returns the pending warnings in the order they were raised
// and clears them.
func (m *Matcher) DrainWarnings() []string {
	out := m.warnings
	m.warnings = nil
	return out
}

func (m *Matcher) pick(hits []Identity, input, context string) (Identity, bool) {
	if len(hits) == 1 {
		return hits[0], true
	}
	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.Name)
	}
	sort.Strings(names)
	m.warnf("%s: ambiguous name %q matches %d members (%s)",
		context, strings.TrimSpace(input), len(hits), strings.Join(names, ", "))
	return Identity{}, false
}

// closest suggests a registered name for the audit trail only; it never
// resolves anything.
func (m *Matcher) closest(name string) (string, bool) {
	if len(m.names) == 0 {
		return "", false
	}
	if ranks := fuzzy.RankFindNormalizedFold(name, m.names); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target, true
	}

	best, bestDist := "", -1
	for _, candidate := range m.names {
		d := fuzzy.LevenshteinDistance(name, candidate)
		if bestDist < 0 || d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	limit := len([]rune(name)) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}

func (m *Matcher) warnf(format string, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}
