package store

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const idSuffixLen = 9

// GenerateID returns a collision-resistant opaque id: the current unix
// millisecond timestamp followed by a 9-character base-36 random suffix.
func GenerateID() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	for range idSuffixLen {
		sb.WriteByte(idSuffixAlphabet[rand.IntN(len(idSuffixAlphabet))])
	}

	return sb.String()
}

// freshID generates an id that is not already in use anywhere in the store.
// Ids must be globally unique within one store document, not just within one
// entity map.
func (s Store) freshID() string {
	for {
		id := GenerateID()
		if !s.idInUse(id) {
			return id
		}
	}
}

func (s Store) idInUse(id string) bool {
	if _, ok := s.Servers[id]; ok {
		return true
	}
	if _, ok := s.Categories[id]; ok {
		return true
	}
	if _, ok := s.ConfigTargets[id]; ok {
		return true
	}
	if _, ok := s.CategoryServerRelations[id]; ok {
		return true
	}
	if _, ok := s.ServerKeyRelations[id]; ok {
		return true
	}
	if _, ok := s.Keys[id]; ok {
		return true
	}

	return false
}
