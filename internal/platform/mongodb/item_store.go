package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ashrafz/foodshare-api/internal/domain"
	"github.com/ashrafz/foodshare-api/internal/store"
)

// itemCollection is the single collection holding donation items.
const itemCollection = "products"

// MongoItemStore implements store.ItemStore on a MongoDB collection.
type MongoItemStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// Ensure MongoItemStore implements the ItemStore interface
var _ store.ItemStore = (*MongoItemStore)(nil)

// NewMongoItemStore creates a new MongoItemStore over the products
// collection of the given database.
func NewMongoItemStore(client *mongo.Client, dbName string, logger *slog.Logger) *MongoItemStore {
	return &MongoItemStore{
		coll:   client.Database(dbName).Collection(itemCollection),
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// parseID converts a hex identifier into the collection's native key type.
// Malformed input yields store.ErrInvalidID without touching the database.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// emailFilter builds an equality filter on the given field. An empty value
// produces an empty filter, which matches every document; callers that must
// not list everything gate the value before reaching the store.
func emailFilter(field, email string) bson.M {
	if email == "" {
		return bson.M{}
	}
	return bson.M{field: email}
}

// replaceFields builds the $set document for a full replace. Every listed
// field is written, so prior values are overwritten regardless of content.
func replaceFields(item *domain.Item) bson.M {
	return bson.M{
		"foodName":          item.FoodName,
		"foodQuantity":      item.FoodQuantity,
		"date":              item.Date,
		"location":          item.Location,
		"foodImg":           item.FoodImg,
		"donation":          item.Donation,
		"notes":             item.Notes,
		"userDisplayName":   item.UserDisplayName,
		"userPhotoURL":      item.UserPhotoURL,
		"userEmail":         item.UserEmail,
		"requesterEmail":    item.RequesterEmail,
		"requesterName":     item.RequesterName,
		"requesterPhotoURL": item.RequesterPhotoURL,
		"requestDate":       item.RequestDate,
		"status":            item.Status,
	}
}

// patchFields builds the $set document for a partial edit. Only the
// non-nil fields of the patch are written.
func patchFields(patch *domain.ItemPatch) bson.M {
	set := bson.M{}
	if patch.FoodName != nil {
		set["foodName"] = *patch.FoodName
	}
	if patch.FoodQuantity != nil {
		set["foodQuantity"] = *patch.FoodQuantity
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.FoodImg != nil {
		set["foodImg"] = *patch.FoodImg
	}
	if patch.Donation != nil {
		set["donation"] = *patch.Donation
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	return set
}

// List retrieves all items in store-default ordering.
func (s *MongoItemStore) List(ctx context.Context) ([]domain.Item, error) {
	return s.find(ctx, "list", bson.M{})
}

// ListByOwner retrieves the items owned by the given email.
func (s *MongoItemStore) ListByOwner(ctx context.Context, email string) ([]domain.Item, error) {
	return s.find(ctx, "list_by_owner", emailFilter("userEmail", email))
}

// ListByRequester retrieves the items requested by the given email.
func (s *MongoItemStore) ListByRequester(ctx context.Context, email string) ([]domain.Item, error) {
	return s.find(ctx, "list_by_requester", emailFilter("requesterEmail", email))
}

func (s *MongoItemStore) find(ctx context.Context, operation string, filter bson.M) ([]domain.Item, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, store.NewStoreError("item", operation, "query failed", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			s.logger.Warn("failed to close cursor", "error", err, "operation", operation)
		}
	}()

	items := []domain.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, store.NewStoreError("item", operation, "decoding results failed", err)
	}
	return items, nil
}

// GetByID retrieves a single item by identifier.
func (s *MongoItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var item domain.Item
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrItemNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("item", "get", "query failed", err)
	}
	return &item, nil
}

// Create appends a new item and returns the store-assigned identifier.
func (s *MongoItemStore) Create(ctx context.Context, item *domain.Item) (string, error) {
	// The store assigns the identifier; drop any the caller set.
	item.ID = primitive.NilObjectID

	result, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return "", store.NewStoreError("item", "create", "insert failed", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", store.NewStoreError("item", "create", "unexpected inserted ID type", nil)
	}

	s.logger.Debug("item created", "item_id", oid.Hex())
	return oid.Hex(), nil
}

// Replace overwrites every listed field under the identifier, creating the
// document when absent.
func (s *MongoItemStore) Replace(ctx context.Context, id string, item *domain.Item) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": replaceFields(item)}
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateByID(ctx, oid, update, opts); err != nil {
		return store.NewStoreError("item", "replace", "update failed", err)
	}
	return nil
}

// Patch merges the non-nil fields of the patch under the identifier,
// creating the document when absent.
func (s *MongoItemStore) Patch(ctx context.Context, id string, patch *domain.ItemPatch) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := patchFields(patch)
	if len(set) == 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set}, opts); err != nil {
		return store.NewStoreError("item", "patch", "update failed", err)
	}
	return nil
}

// UpdateStatus sets only the status field. A document is never created
// from a status alone.
func (s *MongoItemStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	return s.updateField(ctx, "update_status", id, "status", string(status))
}

// UpdateRequesterEmail sets only the requester email field, without upsert.
func (s *MongoItemStore) UpdateRequesterEmail(ctx context.Context, id string, email string) error {
	return s.updateField(ctx, "update_requester_email", id, "requesterEmail", email)
}

func (s *MongoItemStore) updateField(ctx context.Context, operation, id, field, value string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return store.NewStoreError("item", operation, "update failed", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

// Delete removes the matching document and reports how many were removed.
func (s *MongoItemStore) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, store.NewStoreError("item", "delete", "delete failed", err)
	}
	return result.DeletedCount, nil
}
