package core

import (
	"strings"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Identity is the result of resolving a raw author reference.
type Identity struct {
	Key    string
	Mapped bool
}

// Resolver maps raw commit author names and emails to canonical identities.
// Resolution order: explicit aliases by email, aliases by name, the frozen
// member index by email then name, then the raw name flagged unmapped.
type Resolver struct {
	aliases map[string]string

	memberByEmail map[string]string
	memberByName  map[string]string
}

// NewResolver builds a resolver from the alias config and a member snapshot.
// The member index is frozen at construction; later membership changes do not
// affect resolution within a run.
func NewResolver(aliases map[string]string, members []schema.Member) *Resolver {
	r := &Resolver{
		aliases:       make(map[string]string, len(aliases)),
		memberByEmail: make(map[string]string),
		memberByName:  make(map[string]string),
	}
	for key, canonical := range aliases {
		r.aliases[normalizeKey(key)] = canonical
	}
	for _, m := range members {
		if email := normalizeKey(m.Email); email != "" {
			if _, dup := r.memberByEmail[email]; !dup {
				r.memberByEmail[email] = m.Name
			}
		}
		if name := normalizeKey(m.Name); name != "" {
			if _, dup := r.memberByName[name]; !dup {
				r.memberByName[name] = m.Name
			}
		}
		if username := normalizeKey(m.Username); username != "" {
			if _, dup := r.memberByName[username]; !dup {
				r.memberByName[username] = m.Name
			}
		}
	}
	return r
}

// Resolve returns the canonical identity for an author name and email pair.
func (r *Resolver) Resolve(name, email string) Identity {
	if canonical, ok := r.aliases[normalizeKey(email)]; ok {
		return Identity{Key: canonical, Mapped: true}
	}
	if canonical, ok := r.aliases[normalizeKey(name)]; ok {
		return Identity{Key: canonical, Mapped: true}
	}
	if canonical, ok := r.memberByEmail[normalizeKey(email)]; ok {
		return Identity{Key: canonical, Mapped: true}
	}
	if canonical, ok := r.memberByName[normalizeKey(name)]; ok {
		return Identity{Key: canonical, Mapped: true}
	}
	return Identity{Key: strings.TrimSpace(name), Mapped: false}
}

// ResolveName resolves a display name with no email, as used for issue
// assignees and MR authors.
func (r *Resolver) ResolveName(name string) Identity {
	return r.Resolve(name, "")
}

// normalizeKey lowercases, trims and collapses inner whitespace so lookups
// tolerate formatting drift between data sources.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
