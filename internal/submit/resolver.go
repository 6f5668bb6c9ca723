package submit

import (
	"context"
	"errors"
	"fmt"
)

// Identifier recovery errors. Both are fatal for the submission: the
// client must never guess which record was just created.
var (
	ErrNoIdentifier      = errors.New("create response carried no identifier")
	ErrIdentityNotFound  = errors.New("created record not found by search")
	ErrIdentityAmbiguous = errors.New("search matched more than one record")
)

// CommitResult is the phase-1 outcome as seen on the wire: an echoed
// identifier, a confirmation message, or both.
type CommitResult struct {
	ID      string
	Message string
}

// IdentifierResolver recovers the created entity's identifier from a
// phase-1 result. Which implementation to use is a per-endpoint
// contract: endpoints that echo the identifier use the echoed resolver,
// message-only endpoints fall back to search.
type IdentifierResolver interface {
	Resolve(ctx context.Context, res CommitResult) (string, error)
}

// EchoedIdentifierResolver reads the identifier straight from the
// create response.
type EchoedIdentifierResolver struct{}

// Resolve returns the echoed identifier, or ErrNoIdentifier if the
// endpoint broke its contract.
func (EchoedIdentifierResolver) Resolve(_ context.Context, res CommitResult) (string, error) {
	if res.ID == "" {
		return "", ErrNoIdentifier
	}
	return res.ID, nil
}

// Candidate is one record returned by a recovery search.
type Candidate struct {
	ID    string
	Email string
}

// SearchFunc queries the backend for records matching a name.
type SearchFunc func(ctx context.Context, query string) ([]Candidate, error)

// SearchBasedIdentifierResolver recovers the identifier by re-querying
// the backend with the just-submitted name and keeping only the record
// whose email matches exactly. Exactly one match is required.
type SearchBasedIdentifierResolver struct {
	Search SearchFunc
	Name   string
	Email  string
}

// Resolve runs the recovery search.
func (r SearchBasedIdentifierResolver) Resolve(ctx context.Context, _ CommitResult) (string, error) {
	candidates, err := r.Search(ctx, r.Name)
	if err != nil {
		return "", fmt.Errorf("recovery search failed: %w", err)
	}

	var matched []Candidate
	for _, c := range candidates {
		if c.Email == r.Email {
			matched = append(matched, c)
		}
	}

	switch len(matched) {
	case 0:
		return "", ErrIdentityNotFound
	case 1:
		return matched[0].ID, nil
	default:
		return "", ErrIdentityAmbiguous
	}
}
