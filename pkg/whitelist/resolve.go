// Package whitelist implements the whitelist mutation backends and the
// platform name resolution rules shared by both of them.
package whitelist

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// bedrockPrefix is the marker prepended to Bedrock names so that the
// Geyser/Floodgate bridge maps them onto Java identities.
const bedrockPrefix = "1"

// Resolve returns the name that actually goes into the whitelist: trimmed,
// and prefixed when the edition is Bedrock. The edition is user-supplied
// free text, so it is matched case-insensitively by substring.
func Resolve(name, edition string) string {
	resolved := strings.TrimSpace(name)
	if strings.Contains(strings.ToLower(edition), "bedrock") {
		return bedrockPrefix + resolved
	}
	return resolved
}

// OfflineUUID derives the identity the server assigns to a player in
// offline mode: an MD5 (version 3) UUID over "OfflinePlayer:<name>",
// the same derivation the server itself uses. Deterministic by design
// of the hash: the same name always yields the same identifier.
func OfflineUUID(resolvedName string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + resolvedName))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	id, _ := uuid.FromBytes(sum[:])
	return id
}
