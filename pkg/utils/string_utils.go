package utils

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be omitted from JSON if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind a string pointer, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
