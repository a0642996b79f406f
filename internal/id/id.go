// Package id generates prefixed entity identifiers.
//
// Every record gets a NanoID tagged with a short type prefix so IDs are
// self-describing in logs and URLs:
//
//	con-V1StGXR8_Z5jdHi6B-myT   contact
//	com-FyD9t2mPqLxW3nKjR8vZa   company
//	tag-pQ7sHwTbXcMfJdN2kYg4L   tag
//	act-Zr5mVuKnB8yPqWxT3jHd9   activity
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes.
const (
	PrefixContact  = "con"
	PrefixCompany  = "com"
	PrefixTag      = "tag"
	PrefixActivity = "act"
)

// New creates a prefixed unique ID. The random portion is a default
// NanoID (21 characters, URL-safe alphabet), which is shorter than a
// UUID while carrying comparable entropy.
func New(prefix string) (string, error) {
	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + suffix, nil
}

// MustNew is like New but panics when generation fails. Suitable when
// entropy exhaustion should crash the program rather than be handled.
func MustNew(prefix string) string {
	v, err := New(prefix)
	if err != nil {
		panic(fmt.Sprintf("id: %v", err))
	}
	return v
}

// HasPrefix reports whether id carries the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
