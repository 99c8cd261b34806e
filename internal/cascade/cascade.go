// Package cascade implements cascading deletes for stores that have no
// declarative foreign keys. A cascade is a fixed sequence of primitive
// steps that removes the leaf-most records first, so a reader never sees a
// row whose wordlist is gone while the wordlist is still listed.
//
// The sequence is not atomic on its own. A failing step aborts the rest and
// nothing already done is undone; callers that can open a multi-document
// transaction run the whole sequence inside it.
package cascade

import (
	"context"
	"fmt"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// Step names reported by StepError.
const (
	StepReadDictionary  = "read_dictionary"
	StepDeleteRows      = "delete_rows"
	StepDeleteWordlists = "delete_wordlists"
	StepDeleteDict      = "delete_dictionary"
	StepPullWordlist    = "pull_wordlist"
	StepDeleteWordlist  = "delete_wordlist"
)

// Steps are the primitive operations a cascade is built from.
type Steps interface {
	// DictionaryWordlistIDs returns the wordlist ids listed on a dictionary.
	// found is false when the dictionary does not exist.
	DictionaryWordlistIDs(ctx context.Context, dictID domain.ID) (ids []domain.ID, found bool, err error)
	DeleteRowsByWordlists(ctx context.Context, wordlistIDs []domain.ID) (int64, error)
	DeleteWordlists(ctx context.Context, wordlistIDs []domain.ID) (int64, error)
	DeleteDictionary(ctx context.Context, dictID domain.ID) (bool, error)

	// PullWordlist removes a wordlist id from whichever dictionary lists it.
	// It must be a no-op when no dictionary does.
	PullWordlist(ctx context.Context, wordlistID domain.ID) error
	DeleteWordlist(ctx context.Context, wordlistID domain.ID) (bool, error)
}

// Result summarizes what a cascade removed.
type Result struct {
	Deleted   bool
	Wordlists int64
	Rows      int64
}

// StepError reports the step at which a cascade stopped. Steps before it
// have already been applied.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cascade %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DeleteDictionary removes a dictionary, its wordlists and their rows:
//
//  1. read the dictionary's wordlist ids (stop if it does not exist)
//  2. delete rows of those wordlists
//  3. delete those wordlists
//  4. delete the dictionary
func DeleteDictionary(ctx context.Context, s Steps, dictID domain.ID) (Result, error) {
	var res Result

	ids, found, err := s.DictionaryWordlistIDs(ctx, dictID)
	if err != nil {
		return res, &StepError{Step: StepReadDictionary, Err: err}
	}
	if !found {
		return res, nil
	}

	if len(ids) > 0 {
		res.Rows, err = s.DeleteRowsByWordlists(ctx, ids)
		if err != nil {
			return res, &StepError{Step: StepDeleteRows, Err: err}
		}

		res.Wordlists, err = s.DeleteWordlists(ctx, ids)
		if err != nil {
			return res, &StepError{Step: StepDeleteWordlists, Err: err}
		}
	}

	res.Deleted, err = s.DeleteDictionary(ctx, dictID)
	if err != nil {
		return res, &StepError{Step: StepDeleteDict, Err: err}
	}

	return res, nil
}

// DeleteWordlist removes a wordlist and its rows:
//
//  1. pull the wordlist id from its parent dictionary
//  2. delete the wordlist's rows
//  3. delete the wordlist
//
// Result.Deleted reports whether the wordlist existed.
func DeleteWordlist(ctx context.Context, s Steps, wordlistID domain.ID) (Result, error) {
	var res Result

	if err := s.PullWordlist(ctx, wordlistID); err != nil {
		return res, &StepError{Step: StepPullWordlist, Err: err}
	}

	rows, err := s.DeleteRowsByWordlists(ctx, []domain.ID{wordlistID})
	if err != nil {
		return res, &StepError{Step: StepDeleteRows, Err: err}
	}
	res.Rows = rows

	res.Deleted, err = s.DeleteWordlist(ctx, wordlistID)
	if err != nil {
		return res, &StepError{Step: StepDeleteWordlist, Err: err}
	}
	if res.Deleted {
		res.Wordlists = 1
	}

	return res, nil
}
