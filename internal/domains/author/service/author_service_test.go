package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/shared/errs"
	"library-catalog/internal/testutil"
)

func setupService(t *testing.T) author.Service {
	t.Helper()
	return NewAuthorService(repository.NewSQLiteRepository(testutil.OpenSQLite(t)))
}

func TestFindOrCreate_CreatesOnceThenReuses(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.FindOrCreate(ctx, "Robert Martin")
	require.NoError(t, err)
	assert.Nil(t, first.Born)

	second, err := svc.FindOrCreate(ctx, "Robert Martin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFindOrCreate_NameIsCaseSensitive(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.FindOrCreate(ctx, "Joshua Kerievsky")
	require.NoError(t, err)
	b, err := svc.FindOrCreate(ctx, "joshua kerievsky")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestFindOrCreate_RejectsInvalidName(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"", "X"} {
		_, err := svc.FindOrCreate(ctx, name)
		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, name, validationErr.InvalidArgs["author"])
	}

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetBirthYear(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.FindOrCreate(ctx, "Martin Fowler")
	require.NoError(t, err)

	updated, err := svc.SetBirthYear(ctx, author.SetBirthYearRequest{Name: "Martin Fowler", SetBornTo: 1963})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	require.NotNil(t, updated.Born)
	assert.Equal(t, 1963, *updated.Born)

	reloaded, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Born)
	assert.Equal(t, 1963, *reloaded.Born)
}

func TestSetBirthYear_MissingAuthorIsNotFound(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.FindOrCreate(ctx, "Sandi Metz")
	require.NoError(t, err)

	_, err = svc.SetBirthYear(ctx, author.SetBirthYearRequest{Name: "Nonexistent", SetBornTo: 1900})
	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, errs.CodeNotFound, errs.Code(err))

	authors, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Nil(t, authors[0].Born)
}

func TestSetBirthYear_RejectsOutOfRangeYear(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.FindOrCreate(ctx, "Kent Beck")
	require.NoError(t, err)

	_, err = svc.SetBirthYear(ctx, author.SetBirthYearRequest{Name: "Kent Beck", SetBornTo: 123456})
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 123456, validationErr.InvalidArgs["setBornTo"])
}

func TestGetByName_MissingIsNil(t *testing.T) {
	svc := setupService(t)

	a, err := svc.GetByName(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Nil(t, a)
}

// staleLookup misses on every name lookup, as if another request created
// the author right after we looked
type staleLookup struct {
	author.Repository
}

func (staleLookup) FindByName(context.Context, string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}

func TestFindOrCreate_LostRaceIsValidationError(t *testing.T) {
	repo := repository.NewSQLiteRepository(testutil.OpenSQLite(t))
	ctx := context.Background()

	_, err := NewAuthorService(repo).FindOrCreate(ctx, "Kent Beck")
	require.NoError(t, err)

	_, err = NewAuthorService(staleLookup{repo}).FindOrCreate(ctx, "Kent Beck")

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "author name must be unique", validationErr.Message)
	assert.Equal(t, "Kent Beck", validationErr.InvalidArgs["author"])
	assert.ErrorIs(t, err, author.ErrDuplicateName)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
