// Package storetest is a behavioural test suite shared by every
// dictionary.Store implementation. Backends differ in what they enforce on
// insert, so each adapter declares its Capabilities and the suite asserts
// the matching behaviour explicitly.
package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
)

// Capabilities describes what a backend enforces.
type Capabilities struct {
	// EnforcesForeignKeys rejects children whose parent does not exist.
	EnforcesForeignKeys bool
	// EnforcesUniqueness rejects duplicate names and duplicate
	// (phrase, meaning, wordlist_id) rows.
	EnforcesUniqueness bool
	// MissingID returns a well-formed id that no record has.
	MissingID func() domain.ID
}

// Run executes the suite. The store may be shared between subtests; every
// subtest uses fresh names.
func Run(t *testing.T, store dictionary.Store, caps Capabilities) {
	t.Helper()
	require.NotNil(t, caps.MissingID, "Capabilities.MissingID is required")

	s := &suite{store: store, caps: caps}

	t.Run("Ping", s.testPing)
	t.Run("CreateAndGetDictionary", s.testCreateAndGetDictionary)
	t.Run("GetDictionary_Missing", s.testGetDictionaryMissing)
	t.Run("ListDictionaries", s.testListDictionaries)
	t.Run("ListChildren_UnknownParent", s.testListUnknownParent)
	t.Run("ExampleScenario", s.testExampleScenario)
	t.Run("DeleteDictionary_Cascades", s.testDeleteDictionaryCascades)
	t.Run("DeleteWordlist_Cascades", s.testDeleteWordlistCascades)
	t.Run("DeleteWordlistRow", s.testDeleteWordlistRow)
	t.Run("Delete_Missing", s.testDeleteMissing)
	t.Run("Delete_Idempotent", s.testDeleteIdempotent)
	t.Run("CreateWordlistRow_MissingWordlist", s.testRowMissingParent)
	t.Run("CreateWordlist_MissingDictionary", s.testWordlistMissingParent)
	t.Run("CreateWordlist_MalformedParent", s.testMalformedParent)
	t.Run("CreateWordlistRow_Duplicate", s.testDuplicateRow)
	t.Run("CreateDictionary_DuplicateName", s.testDuplicateDictName)
}

type suite struct {
	store dictionary.Store
	caps  Capabilities
}

// name returns a unique name that fits the 30 character limit.
func name(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func (s *suite) mustDict(t *testing.T) domain.ID {
	t.Helper()
	id, err := s.store.CreateDictionary(context.Background(), name("dict"))
	require.NoError(t, err)
	require.False(t, id.IsZero())
	return id
}

func (s *suite) mustWordlist(t *testing.T, dictID domain.ID) domain.ID {
	t.Helper()
	id, err := s.store.CreateWordlist(context.Background(), name("wl"), dictID)
	require.NoError(t, err)
	require.False(t, id.IsZero())
	return id
}

func (s *suite) mustRow(t *testing.T, wordlistID domain.ID) domain.ID {
	t.Helper()
	id, err := s.store.CreateWordlistRow(context.Background(), name("phrase"), "meaning", wordlistID)
	require.NoError(t, err)
	require.False(t, id.IsZero())
	return id
}

func (s *suite) assertDictGone(t *testing.T, id domain.ID) {
	t.Helper()
	_, err := s.store.GetDictionary(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func (s *suite) assertNoWordlists(t *testing.T, dictID domain.ID) {
	t.Helper()
	lists, err := s.store.GetWordlistsByDict(context.Background(), dictID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func (s *suite) assertNoRows(t *testing.T, wordlistID domain.ID) {
	t.Helper()
	rows, err := s.store.GetRowsByWordlist(context.Background(), wordlistID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (s *suite) testPing(t *testing.T) {
	require.NoError(t, s.store.Ping(context.Background()))
}

func (s *suite) testCreateAndGetDictionary(t *testing.T) {
	ctx := context.Background()
	n := name("english")

	id, err := s.store.CreateDictionary(ctx, n)
	require.NoError(t, err)

	d, err := s.store.GetDictionary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
	assert.Equal(t, n, d.Name)
}

func (s *suite) testGetDictionaryMissing(t *testing.T) {
	s.assertDictGone(t, s.caps.MissingID())
	s.assertDictGone(t, "not-an-id")
}

func (s *suite) testListDictionaries(t *testing.T) {
	a := s.mustDict(t)
	b := s.mustDict(t)

	dicts, err := s.store.ListDictionaries(context.Background())
	require.NoError(t, err)

	ids := make([]domain.ID, 0, len(dicts))
	for _, d := range dicts {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, a)
	assert.Contains(t, ids, b)
}

func (s *suite) testListUnknownParent(t *testing.T) {
	missing := s.caps.MissingID()
	s.assertNoWordlists(t, missing)
	s.assertNoRows(t, missing)
	s.assertNoWordlists(t, "not-an-id")
	s.assertNoRows(t, "not-an-id")
}

// ---------------------------------------------------------------------------
// Cascades
// ---------------------------------------------------------------------------

func (s *suite) testExampleScenario(t *testing.T) {
	ctx := context.Background()

	dictID, err := s.store.CreateDictionary(ctx, name("Spanish"))
	require.NoError(t, err)
	wlID, err := s.store.CreateWordlist(ctx, name("Verbs"), dictID)
	require.NoError(t, err)
	_, err = s.store.CreateWordlistRow(ctx, "hablar", "to speak", wlID)
	require.NoError(t, err)

	rows, err := s.store.GetRowsByWordlist(ctx, wlID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hablar", rows[0].Phrase)
	assert.Equal(t, "to speak", rows[0].Meaning)
	assert.Equal(t, wlID, rows[0].WordlistID)

	deleted, err := s.store.DeleteDictionary(ctx, dictID)
	require.NoError(t, err)
	assert.True(t, deleted)

	s.assertDictGone(t, dictID)
	s.assertNoWordlists(t, dictID)
	s.assertNoRows(t, wlID)
}

func (s *suite) testDeleteDictionaryCascades(t *testing.T) {
	ctx := context.Background()

	dictID := s.mustDict(t)
	wl1 := s.mustWordlist(t, dictID)
	wl2 := s.mustWordlist(t, dictID)
	s.mustRow(t, wl1)
	s.mustRow(t, wl1)
	s.mustRow(t, wl2)

	otherDict := s.mustDict(t)
	otherWl := s.mustWordlist(t, otherDict)
	otherRow := s.mustRow(t, otherWl)

	deleted, err := s.store.DeleteDictionary(ctx, dictID)
	require.NoError(t, err)
	require.True(t, deleted)

	s.assertDictGone(t, dictID)
	s.assertNoWordlists(t, dictID)
	s.assertNoRows(t, wl1)
	s.assertNoRows(t, wl2)

	lists, err := s.store.GetWordlistsByDict(ctx, otherDict)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, otherWl, lists[0].ID)

	rows, err := s.store.GetRowsByWordlist(ctx, otherWl)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, otherRow, rows[0].ID)
}

func (s *suite) testDeleteWordlistCascades(t *testing.T) {
	ctx := context.Background()

	dictID := s.mustDict(t)
	target := s.mustWordlist(t, dictID)
	sibling := s.mustWordlist(t, dictID)
	s.mustRow(t, target)
	s.mustRow(t, target)
	siblingRow := s.mustRow(t, sibling)

	deleted, err := s.store.DeleteWordlist(ctx, target)
	require.NoError(t, err)
	require.True(t, deleted)

	s.assertNoRows(t, target)

	lists, err := s.store.GetWordlistsByDict(ctx, dictID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, sibling, lists[0].ID)
	assert.Equal(t, dictID, lists[0].DictID)

	rows, err := s.store.GetRowsByWordlist(ctx, sibling)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, siblingRow, rows[0].ID)

	_, err = s.store.GetDictionary(ctx, dictID)
	assert.NoError(t, err)
}

func (s *suite) testDeleteWordlistRow(t *testing.T) {
	ctx := context.Background()

	wl := s.mustWordlist(t, s.mustDict(t))
	keep := s.mustRow(t, wl)
	drop := s.mustRow(t, wl)

	deleted, err := s.store.DeleteWordlistRow(ctx, drop)
	require.NoError(t, err)
	assert.True(t, deleted)

	rows, err := s.store.GetRowsByWordlist(ctx, wl)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep, rows[0].ID)
}

func (s *suite) testDeleteMissing(t *testing.T) {
	ctx := context.Background()

	dictID := s.mustDict(t)
	wl := s.mustWordlist(t, dictID)
	row := s.mustRow(t, wl)

	for _, id := range []domain.ID{s.caps.MissingID(), "not-an-id"} {
		deleted, err := s.store.DeleteDictionary(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = s.store.DeleteWordlist(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = s.store.DeleteWordlistRow(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	}

	// Nothing else was touched.
	lists, err := s.store.GetWordlistsByDict(ctx, dictID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	rows, err := s.store.GetRowsByWordlist(ctx, wl)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row, rows[0].ID)
}

func (s *suite) testDeleteIdempotent(t *testing.T) {
	ctx := context.Background()

	dictID := s.mustDict(t)
	wl := s.mustWordlist(t, dictID)
	row := s.mustRow(t, wl)

	first, err := s.store.DeleteWordlistRow(ctx, row)
	require.NoError(t, err)
	second, err := s.store.DeleteWordlistRow(ctx, row)
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)

	first, err = s.store.DeleteWordlist(ctx, wl)
	require.NoError(t, err)
	second, err = s.store.DeleteWordlist(ctx, wl)
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)

	first, err = s.store.DeleteDictionary(ctx, dictID)
	require.NoError(t, err)
	second, err = s.store.DeleteDictionary(ctx, dictID)
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
}

// ---------------------------------------------------------------------------
// Backend-specific insert behaviour
// ---------------------------------------------------------------------------

func (s *suite) testRowMissingParent(t *testing.T) {
	ctx := context.Background()
	missing := s.caps.MissingID()

	id, err := s.store.CreateWordlistRow(ctx, "orphan", "row", missing)
	if s.caps.EnforcesForeignKeys {
		require.ErrorIs(t, err, domain.ErrParentNotFound)
		assert.True(t, domain.IsIntegrityViolation(err))
		s.assertNoRows(t, missing)
		return
	}

	require.NoError(t, err)
	rows, err := s.store.GetRowsByWordlist(ctx, missing)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
}

func (s *suite) testWordlistMissingParent(t *testing.T) {
	ctx := context.Background()
	missing := s.caps.MissingID()

	id, err := s.store.CreateWordlist(ctx, name("orphan"), missing)
	if s.caps.EnforcesForeignKeys {
		require.ErrorIs(t, err, domain.ErrParentNotFound)
		s.assertNoWordlists(t, missing)
		return
	}

	require.NoError(t, err)
	lists, err := s.store.GetWordlistsByDict(ctx, missing)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, id, lists[0].ID)
}

func (s *suite) testMalformedParent(t *testing.T) {
	ctx := context.Background()

	_, err := s.store.CreateWordlist(ctx, name("bad"), "not-an-id")
	assert.ErrorIs(t, err, domain.ErrParentNotFound)

	_, err = s.store.CreateWordlistRow(ctx, "bad", "parent", "not-an-id")
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func (s *suite) testDuplicateRow(t *testing.T) {
	ctx := context.Background()
	wl := s.mustWordlist(t, s.mustDict(t))

	_, err := s.store.CreateWordlistRow(ctx, "hablar", "to speak", wl)
	require.NoError(t, err)

	_, err = s.store.CreateWordlistRow(ctx, "hablar", "to speak", wl)
	rows, listErr := s.store.GetRowsByWordlist(ctx, wl)
	require.NoError(t, listErr)

	if s.caps.EnforcesUniqueness {
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
		assert.True(t, domain.IsIntegrityViolation(err))
		assert.Len(t, rows, 1)
		return
	}

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func (s *suite) testDuplicateDictName(t *testing.T) {
	ctx := context.Background()
	n := name("dup")

	_, err := s.store.CreateDictionary(ctx, n)
	require.NoError(t, err)

	_, err = s.store.CreateDictionary(ctx, n)
	if s.caps.EnforcesUniqueness {
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		return
	}
	assert.NoError(t, err)
}
