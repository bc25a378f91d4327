package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is the compact storage key for an indexed profile.
// It is derived deterministically from the profile's Identity.
type ID uint64

// IDFromIdentity generates a deterministic ID from an identity string using
// BLAKE2b hashing. The same identity always produces the same ID, which is
// what makes indexing idempotent at the storage layer.
func IDFromIdentity(identity Identity) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(identity))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Profile is a free-text record describing one person. Profiles are owned
// by the profile repository; the ranking engine only reads them.
type Profile struct {
	Name         string
	Expertise    string
	Business     string
	Hobbies      []string
	FamilyStatus string
	Contacts     []string
	Source       string    // Provenance tag (e.g. the file or image the profile came from)
	InsertedAt   time.Time // When the profile was first stored
	UpdatedAt    time.Time // When the profile was last updated
}

// Identity returns the deduplication key for this profile.
func (p *Profile) Identity() Identity {
	return NormalizeIdentity(p.Name)
}

// VectorEntry is the single embedding stored for one (view, identity) pair.
// Upserting the same pair replaces the previous entry.
type VectorEntry struct {
	Identity  Identity
	View      View
	Name      string
	Source    string
	Vector    []float32
	UpdatedAt time.Time
}

// Candidate is a retrieval hit: one identity with its similarity score.
// Candidates are transient and scoped to a single query.
type Candidate struct {
	Identity Identity
	Score    float32
}

// ClassificationOutcome is the judge's verdict for one candidate.
// A failed judge call still produces an outcome, with Matches false and a
// rationale describing the failure.
type ClassificationOutcome struct {
	Identity  Identity
	Matches   bool
	Rationale string
	Score     float32
}

// RankedResult is one entry of the final ranking. A complete ranking holds
// exactly one RankedResult per distinct identity in the queried view.
// Unclassified entries carry Matches=false and an empty rationale but keep
// their true similarity score.
type RankedResult struct {
	Identity  Identity
	Matches   bool
	Rationale string
	Score     float32
}
