// internal/royalty/resolver.go
package royalty

import (
	"errors"
	"fmt"

	"github.com/inklight/bookip-backend/internal/models"
)

var (
	ErrInvalidAuthorData     = errors.New("author and weight inputs are inconsistent")
	ErrInvalidRoyaltyShares  = errors.New("royalty shares must sum to exactly 100%")
	ErrTooManyCollaborators  = errors.New("collaborator limit exceeded")
)

// MaxCollaborators bounds co-authors per asset and parents per
// derivative alike.
const MaxCollaborators = 16

// TotalShare is the exact sum every resolved share set must reach.
const TotalShare = models.PercentScale

// Share is one (recipient, percentage) pair of proportional ownership.
type Share struct {
	Recipient models.Principal `json:"recipient"`
	Percent   uint32           `json:"percent"`
}

type ShareSet []Share

// CollaboratorLimitError reports the provided count alongside the limit
// so callers can diagnose oversized inputs. errors.Is matches it
// against ErrTooManyCollaborators.
type CollaboratorLimitError struct {
	Provided int
	Limit    int
}

func (e *CollaboratorLimitError) Error() string {
	return fmt.Sprintf("too many collaborators: %d provided, limit is %d", e.Provided, e.Limit)
}

func (e *CollaboratorLimitError) Is(target error) bool {
	return target == ErrTooManyCollaborators
}

// Input is the caller-supplied shape a share set is resolved from.
// Exactly one of the three shapes is honored, in the priority order
// documented on Resolve.
type Input struct {
	SingleRecipient models.Principal
	CoAuthors       []models.Principal
	CoAuthorWeights []uint32
	Shares          ShareSet
}

// Resolve produces the canonical validated share set for a registration.
// The branch order is a deliberate, tested contract:
//
//  1. more than one co-author: weights validated pairwise and summed
//  2. exactly one co-author: that author takes 100%
//  3. otherwise: explicit shares validated verbatim, falling back to the
//     single recipient at 100%
//
// Every registration path routes through here; nothing else validates
// ownership splits.
func Resolve(in Input) (ShareSet, error) {
	switch {
	case len(in.CoAuthors) > 1:
		return resolveCoAuthors(in.CoAuthors, in.CoAuthorWeights)

	case len(in.CoAuthors) == 1:
		// A lone entry in the multi-author arrays must not smuggle in a
		// conflicting weight list.
		if len(in.CoAuthorWeights) > 1 ||
			(len(in.CoAuthorWeights) == 1 && in.CoAuthorWeights[0] != TotalShare) {
			return nil, fmt.Errorf("%w: single co-author with conflicting weights", ErrInvalidAuthorData)
		}
		if in.CoAuthors[0].IsZero() {
			return nil, fmt.Errorf("%w: co-author is the zero principal", ErrInvalidAuthorData)
		}
		return ShareSet{{Recipient: in.CoAuthors[0], Percent: TotalShare}}, nil

	case len(in.Shares) > 0:
		return validateShareSet(in.Shares)

	case !in.SingleRecipient.IsZero():
		return ShareSet{{Recipient: in.SingleRecipient, Percent: TotalShare}}, nil

	default:
		return nil, fmt.Errorf("%w: no royalty recipients supplied", ErrInvalidAuthorData)
	}
}

func resolveCoAuthors(authors []models.Principal, weights []uint32) (ShareSet, error) {
	if len(authors) > MaxCollaborators {
		return nil, &CollaboratorLimitError{Provided: len(authors), Limit: MaxCollaborators}
	}
	if len(authors) != len(weights) {
		return nil, fmt.Errorf("%w: %d authors but %d weights",
			ErrInvalidAuthorData, len(authors), len(weights))
	}

	shares := make(ShareSet, 0, len(authors))
	var sum uint64
	for i, author := range authors {
		if author.IsZero() {
			return nil, fmt.Errorf("%w: co-author %d is the zero principal", ErrInvalidAuthorData, i)
		}
		if weights[i] == 0 {
			return nil, fmt.Errorf("%w: co-author %d has a zero weight", ErrInvalidAuthorData, i)
		}
		sum += uint64(weights[i])
		shares = append(shares, Share{Recipient: author, Percent: weights[i]})
	}

	if sum != uint64(TotalShare) {
		return nil, fmt.Errorf("%w: weights sum to %d", ErrInvalidRoyaltyShares, sum)
	}

	return shares, nil
}

func validateShareSet(shares ShareSet) (ShareSet, error) {
	if len(shares) > MaxCollaborators {
		return nil, &CollaboratorLimitError{Provided: len(shares), Limit: MaxCollaborators}
	}

	var sum uint64
	for i, share := range shares {
		if share.Recipient.IsZero() {
			return nil, fmt.Errorf("%w: share %d has the zero recipient", ErrInvalidAuthorData, i)
		}
		if share.Percent == 0 {
			return nil, fmt.Errorf("%w: share %d has a zero percentage", ErrInvalidAuthorData, i)
		}
		sum += uint64(share.Percent)
	}

	if sum != uint64(TotalShare) {
		return nil, fmt.Errorf("%w: shares sum to %d", ErrInvalidRoyaltyShares, sum)
	}

	return shares, nil
}
