package core

import (
	"crypto/sha1"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"hash"
	"strings"
)

// AllowedHashFormats are the hash algorithms the Modrinth pack format lets launchers verify downloads with
var AllowedHashFormats = []string{"sha1", "sha512"}

// GetHashImpl gets an implementation of hash.Hash for the given (allowed) hash type string
func GetHashImpl(hashType string) (hash.Hash, error) {
	switch strings.ToLower(hashType) {
	case "sha1":
		return sha1.New(), nil
	case "sha512":
		return sha512.New(), nil
	}
	return nil, errors.New("hash implementation not found for " + hashType)
}

// FilterHashes returns the subset of hashes whose algorithm is allowed and whose value is a well-formed hex digest
// for that algorithm. The result may be empty, but is never nil.
func FilterHashes(hashes map[string]string) map[string]string {
	filtered := make(map[string]string)
	for format, value := range hashes {
		h, err := GetHashImpl(format)
		if err != nil || format != strings.ToLower(format) {
			continue
		}
		value = strings.ToLower(strings.TrimSpace(value))
		if len(value) != h.Size()*2 {
			continue
		}
		if _, err := hex.DecodeString(value); err != nil {
			continue
		}
		filtered[format] = value
	}
	return filtered
}
