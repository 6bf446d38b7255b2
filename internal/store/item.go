package store

import (
	"context"

	"github.com/ashrafz/foodshare-api/internal/domain"
)

// ItemStore defines the interface for donation item persistence over the
// products collection. Identifiers are hex-encoded ObjectIDs; a malformed
// identifier yields ErrInvalidID from every identifier-taking method.
//
// Concurrent writers to the same identifier race with last-write-wins
// semantics: field-level for patch operations, whole-document for replace.
// The interface offers no transactions or version checks.
type ItemStore interface {
	// List retrieves all items in store-default ordering. The result set is
	// unbounded; the collection has no pagination.
	List(ctx context.Context) ([]domain.Item, error)

	// ListByOwner retrieves the items whose owner email equals email.
	// An empty email produces an empty filter, which lists everything;
	// callers gate the parameter before reaching this method.
	ListByOwner(ctx context.Context, email string) ([]domain.Item, error)

	// ListByRequester retrieves the items whose requester email equals
	// email, with the same empty-filter behavior as ListByOwner.
	ListByRequester(ctx context.Context, email string) ([]domain.Item, error)

	// GetByID retrieves a single item by identifier.
	// Returns ErrItemNotFound if no document matches.
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// Create appends a new item and returns the store-assigned identifier.
	// Any identifier already set on the item is ignored.
	Create(ctx context.Context, item *domain.Item) (string, error)

	// Replace overwrites every listed field of the item under the given
	// identifier with upsert semantics: a non-existent identifier creates
	// the document.
	Replace(ctx context.Context, id string, item *domain.Item) error

	// Patch merges the non-nil fields of the patch into the document under
	// the given identifier, with upsert semantics.
	Patch(ctx context.Context, id string, patch *domain.ItemPatch) error

	// UpdateStatus sets only the status field. Plain update: returns
	// ErrItemNotFound rather than creating a document, since a document
	// consisting of a status alone would be meaningless.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error

	// UpdateRequesterEmail sets only the requester email field, with the
	// same plain-update semantics as UpdateStatus.
	UpdateRequesterEmail(ctx context.Context, id string, email string) error

	// Delete removes the matching document and returns the number of
	// documents removed (zero when the identifier matched nothing).
	Delete(ctx context.Context, id string) (int64, error)
}
