// internal/royalty/resolver_test.go
package royalty

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inklight/bookip-backend/internal/models"
)

func principal(n int) models.Principal {
	p, _ := models.NewPrincipal(fmt.Sprintf("0x%040x", n+1))
	return p
}

func TestResolveSingleRecipient(t *testing.T) {
	shares, err := Resolve(Input{SingleRecipient: principal(0)})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, principal(0), shares[0].Recipient)
	assert.Equal(t, uint32(TotalShare), shares[0].Percent)
}

func TestResolveCoAuthorsEqualSplit(t *testing.T) {
	shares, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{60_000_000, 40_000_000},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, uint32(60_000_000), shares[0].Percent)
	assert.Equal(t, uint32(40_000_000), shares[1].Percent)
}

func TestResolveCoAuthorsSumMustBeExact(t *testing.T) {
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{60_000_000, 40_000_001},
	})
	assert.ErrorIs(t, err, ErrInvalidRoyaltyShares)

	_, err = Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{60_000_000, 39_999_999},
	})
	assert.ErrorIs(t, err, ErrInvalidRoyaltyShares)
}

func TestResolveCoAuthorsLengthMismatch(t *testing.T) {
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1), principal(2)},
		CoAuthorWeights: []uint32{50_000_000, 50_000_000},
	})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)
}

func TestResolveCollaboratorLimit(t *testing.T) {
	authors := make([]models.Principal, MaxCollaborators+1)
	weights := make([]uint32, MaxCollaborators+1)
	for i := range authors {
		authors[i] = principal(i)
		weights[i] = TotalShare / uint32(len(authors))
	}

	_, err := Resolve(Input{CoAuthors: authors, CoAuthorWeights: weights})
	assert.ErrorIs(t, err, ErrTooManyCollaborators)

	var limitErr *CollaboratorLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, MaxCollaborators+1, limitErr.Provided)
	assert.Equal(t, MaxCollaborators, limitErr.Limit)
}

// The limit is checked before the length equality so an oversized input
// reports the limit even when the weights also mismatch.
func TestResolveLimitCheckedBeforeLengthMismatch(t *testing.T) {
	authors := make([]models.Principal, MaxCollaborators+1)
	for i := range authors {
		authors[i] = principal(i)
	}

	_, err := Resolve(Input{CoAuthors: authors, CoAuthorWeights: []uint32{TotalShare}})
	assert.ErrorIs(t, err, ErrTooManyCollaborators)
}

func TestResolveMaxCollaboratorsAccepted(t *testing.T) {
	authors := make([]models.Principal, MaxCollaborators)
	weights := make([]uint32, MaxCollaborators)
	per := TotalShare / uint32(MaxCollaborators)
	for i := range authors {
		authors[i] = principal(i)
		weights[i] = per
	}

	shares, err := Resolve(Input{CoAuthors: authors, CoAuthorWeights: weights})
	require.NoError(t, err)
	assert.Len(t, shares, MaxCollaborators)

	var sum uint64
	for _, s := range shares {
		sum += uint64(s.Percent)
	}
	assert.Equal(t, uint64(TotalShare), sum)
}

func TestResolveZeroWeightRejected(t *testing.T) {
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{TotalShare, 0},
	})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)
}

func TestResolveZeroCoAuthorRejected(t *testing.T) {
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), models.ZeroPrincipal},
		CoAuthorWeights: []uint32{50_000_000, 50_000_000},
	})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)
}

func TestResolveSingleCoAuthorTakesAll(t *testing.T) {
	shares, err := Resolve(Input{CoAuthors: []models.Principal{principal(3)}})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, principal(3), shares[0].Recipient)
	assert.Equal(t, uint32(TotalShare), shares[0].Percent)
}

func TestResolveSingleCoAuthorConflictingWeights(t *testing.T) {
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0)},
		CoAuthorWeights: []uint32{50_000_000},
	})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)

	_, err = Resolve(Input{
		CoAuthors:       []models.Principal{principal(0)},
		CoAuthorWeights: []uint32{50_000_000, 50_000_000},
	})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)
}

func TestResolveSingleCoAuthorFullWeightAccepted(t *testing.T) {
	shares, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0)},
		CoAuthorWeights: []uint32{TotalShare},
	})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, uint32(TotalShare), shares[0].Percent)
}

func TestResolveExplicitShares(t *testing.T) {
	in := ShareSet{
		{Recipient: principal(0), Percent: 25_000_000},
		{Recipient: principal(1), Percent: 25_000_000},
		{Recipient: principal(2), Percent: 50_000_000},
	}

	shares, err := Resolve(Input{Shares: in})
	require.NoError(t, err)
	assert.Equal(t, in, shares)
}

func TestResolveExplicitSharesBadSum(t *testing.T) {
	_, err := Resolve(Input{Shares: ShareSet{
		{Recipient: principal(0), Percent: 99_999_999},
	}})
	assert.ErrorIs(t, err, ErrInvalidRoyaltyShares)
}

// Co-author arrays outrank explicit shares when both are supplied.
func TestResolveBranchPriority(t *testing.T) {
	shares, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{70_000_000, 30_000_000},
		Shares: ShareSet{
			{Recipient: principal(5), Percent: TotalShare},
		},
		SingleRecipient: principal(6),
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, principal(0), shares[0].Recipient)
	assert.Equal(t, principal(1), shares[1].Recipient)
}

func TestResolveNothingSupplied(t *testing.T) {
	_, err := Resolve(Input{})
	assert.ErrorIs(t, err, ErrInvalidAuthorData)
}

func TestResolveSumNoUint32Overflow(t *testing.T) {
	// Two near-max weights overflow uint32 but not the uint64 accumulator;
	// the error must be the sum mismatch, not a wrapped-around success.
	_, err := Resolve(Input{
		CoAuthors:       []models.Principal{principal(0), principal(1)},
		CoAuthorWeights: []uint32{4_000_000_000, 4_000_000_000},
	})
	assert.ErrorIs(t, err, ErrInvalidRoyaltyShares)
}

func TestCollaboratorLimitErrorMessage(t *testing.T) {
	err := &CollaboratorLimitError{Provided: 17, Limit: 16}
	assert.Equal(t, "too many collaborators: 17 provided, limit is 16", err.Error())
	assert.True(t, errors.Is(err, ErrTooManyCollaborators))
}
