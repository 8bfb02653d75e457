// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each entity kind.
const (
	IssuePrefix     = "iss-"
	FilterPrefix    = "flt-"
	WorkspacePrefix = "ws-"
	UserPrefix      = "usr-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Issue returns a new issue ID.
func Issue() (string, error) { return GenerateWithPrefix(IssuePrefix) }

// Filter returns a new saved-filter ID.
func Filter() (string, error) { return GenerateWithPrefix(FilterPrefix) }
