package handlers

import "strings"

// HostAllowList is the static allow-list network tools close over. A nil
// or empty list means unrestricted. Matching is exact hostname equality,
// case-insensitive; there is no wildcard or suffix matching.
type HostAllowList []string

// Allows reports whether host may be contacted.
func (l HostAllowList) Allows(host string) bool {
	if len(l) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, allowed := range l {
		if strings.ToLower(allowed) == host {
			return true
		}
	}
	return false
}
