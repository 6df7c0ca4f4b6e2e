package domain

// DefaultKeyPrefix namespaces every key written to the shared store.
const DefaultKeyPrefix = "folio:"

// KeyPrefixOr returns prefix, or DefaultKeyPrefix when it is empty.
func KeyPrefixOr(prefix string) string {
	if prefix == "" {
		return DefaultKeyPrefix
	}
	return prefix
}
