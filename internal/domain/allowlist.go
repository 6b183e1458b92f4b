package domain

import "strings"

// AdminList is the configured set of privileged emails. Membership is exact
// string comparison: no case folding, no whitespace trimming. The stored
// email must match the configured entry byte for byte.
//
// The admin flag is never persisted on the user record. It is recomputed
// from this list wherever a fresh trust decision is needed: at token mint
// time and at the edge gate.
type AdminList map[string]struct{}

// ParseAdminList splits a comma-separated email list as configured in
// ADMIN_EMAILS. Empty segments are dropped; everything else is kept as-is.
func ParseAdminList(csv string) AdminList {
	list := AdminList{}
	for _, e := range strings.Split(csv, ",") {
		if e == "" {
			continue
		}
		list[e] = struct{}{}
	}
	return list
}

func (l AdminList) IsAdmin(email string) bool {
	_, ok := l[email]
	return ok
}
