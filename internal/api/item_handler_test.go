package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ashrafz/foodshare-api/internal/api/shared"
	"github.com/ashrafz/foodshare-api/internal/domain"
	"github.com/ashrafz/foodshare-api/internal/service/auth"
	"github.com/ashrafz/foodshare-api/internal/store"
)

// mockItemStore is a mock implementation of the store.ItemStore interface
type mockItemStore struct {
	listFn                 func(ctx context.Context) ([]domain.Item, error)
	listByOwnerFn          func(ctx context.Context, email string) ([]domain.Item, error)
	listByRequesterFn      func(ctx context.Context, email string) ([]domain.Item, error)
	getByIDFn              func(ctx context.Context, id string) (*domain.Item, error)
	createFn               func(ctx context.Context, item *domain.Item) (string, error)
	replaceFn              func(ctx context.Context, id string, item *domain.Item) error
	patchFn                func(ctx context.Context, id string, patch *domain.ItemPatch) error
	updateStatusFn         func(ctx context.Context, id string, status domain.Status) error
	updateRequesterEmailFn func(ctx context.Context, id string, email string) error
	deleteFn               func(ctx context.Context, id string) (int64, error)
}

func (m *mockItemStore) List(ctx context.Context) ([]domain.Item, error) {
	return m.listFn(ctx)
}

func (m *mockItemStore) ListByOwner(ctx context.Context, email string) ([]domain.Item, error) {
	return m.listByOwnerFn(ctx, email)
}

func (m *mockItemStore) ListByRequester(ctx context.Context, email string) ([]domain.Item, error) {
	return m.listByRequesterFn(ctx, email)
}

func (m *mockItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockItemStore) Create(ctx context.Context, item *domain.Item) (string, error) {
	return m.createFn(ctx, item)
}

func (m *mockItemStore) Replace(ctx context.Context, id string, item *domain.Item) error {
	return m.replaceFn(ctx, id, item)
}

func (m *mockItemStore) Patch(ctx context.Context, id string, patch *domain.ItemPatch) error {
	return m.patchFn(ctx, id, patch)
}

func (m *mockItemStore) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockItemStore) UpdateRequesterEmail(ctx context.Context, id string, email string) error {
	return m.updateRequesterEmailFn(ctx, id, email)
}

func (m *mockItemStore) Delete(ctx context.Context, id string) (int64, error) {
	return m.deleteFn(ctx, id)
}

// newRequestWithID builds a request with a chi route context carrying the
// {id} URL parameter, the way the router would.
func newRequestWithID(method, target, id string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withClaims attaches authenticated session claims to the request context,
// the way the auth middleware would.
func withClaims(req *http.Request, email string) *http.Request {
	claims := &auth.Claims{Email: email}
	return req.WithContext(context.WithValue(req.Context(), shared.ClaimsContextKey, claims))
}

func TestListItems(t *testing.T) {
	items := []domain.Item{
		{FoodName: "Rice", FoodQuantity: "5kg", UserEmail: "alice@example.com"},
		{FoodName: "Bread", FoodQuantity: "2 loaves", UserEmail: "bob@example.com"},
	}

	t.Run("success", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			listFn: func(ctx context.Context) ([]domain.Item, error) { return items, nil },
		}, slog.Default())

		rr := httptest.NewRecorder()
		handler.ListItems(rr, httptest.NewRequest("GET", "/products", nil))

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []domain.Item
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Len(t, got, 2)
		assert.Equal(t, "Rice", got[0].FoodName)
	})

	t.Run("store failure", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			listFn: func(ctx context.Context) ([]domain.Item, error) {
				return nil, errors.New("connection reset")
			},
		}, slog.Default())

		rr := httptest.NewRecorder()
		handler.ListItems(rr, httptest.NewRequest("GET", "/products", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection reset",
			"raw store errors must not reach the client")
	})
}

func TestListItemsByOwner(t *testing.T) {
	ownerItems := []domain.Item{
		{FoodName: "Rice", UserEmail: "alice@example.com"},
	}

	tests := []struct {
		name           string
		claimsEmail    string // empty means no claims in context
		queryEmail     string
		expectedStatus int
		expectItems    bool
	}{
		{
			name:           "matching owner",
			claimsEmail:    "alice@example.com",
			queryEmail:     "alice@example.com",
			expectedStatus: http.StatusOK,
			expectItems:    true,
		},
		{
			name:           "email mismatch",
			claimsEmail:    "alice@example.com",
			queryEmail:     "bob@example.com",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing query parameter fails closed",
			claimsEmail:    "alice@example.com",
			queryEmail:     "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no claims in context",
			claimsEmail:    "",
			queryEmail:     "alice@example.com",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storeCalled := false
			handler := NewItemHandler(&mockItemStore{
				listByOwnerFn: func(ctx context.Context, email string) ([]domain.Item, error) {
					storeCalled = true
					assert.Equal(t, tc.claimsEmail, email)
					return ownerItems, nil
				},
			}, slog.Default())

			target := "/products/user"
			if tc.queryEmail != "" {
				target += "?userEmail=" + tc.queryEmail
			}
			req := httptest.NewRequest("GET", target, nil)
			if tc.claimsEmail != "" {
				req = withClaims(req, tc.claimsEmail)
			}

			rr := httptest.NewRecorder()
			handler.ListItemsByOwner(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectItems, storeCalled, "store call mismatch")
			if !tc.expectItems {
				assert.NotContains(t, rr.Body.String(), "Rice",
					"rejections must not carry item data")
			}
		})
	}
}

func TestListItemsByRequester(t *testing.T) {
	t.Run("filters by requester email", func(t *testing.T) {
		var gotEmail string
		handler := NewItemHandler(&mockItemStore{
			listByRequesterFn: func(ctx context.Context, email string) ([]domain.Item, error) {
				gotEmail = email
				return []domain.Item{{FoodName: "Rice", RequesterEmail: email}}, nil
			},
		}, slog.Default())

		req := httptest.NewRequest("GET", "/request/user?requesterEmail=bob@example.com", nil)
		rr := httptest.NewRecorder()
		handler.ListItemsByRequester(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "bob@example.com", gotEmail)
	})

	t.Run("absent parameter lists all", func(t *testing.T) {
		var gotEmail string
		handler := NewItemHandler(&mockItemStore{
			listByRequesterFn: func(ctx context.Context, email string) ([]domain.Item, error) {
				gotEmail = email
				return []domain.Item{}, nil
			},
		}, slog.Default())

		rr := httptest.NewRecorder()
		handler.ListItemsByRequester(rr, httptest.NewRequest("GET", "/request/user", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, gotEmail, "missing parameter reaches the store as an empty filter")
	})
}

func TestGetItem(t *testing.T) {
	itemID := primitive.NewObjectID()
	item := &domain.Item{
		ID:           itemID,
		FoodName:     "Rice",
		FoodQuantity: "5kg",
	}

	tests := []struct {
		name           string
		id             string
		storeResult    *domain.Item
		storeErr       error
		expectedStatus int
	}{
		{
			name:           "success",
			id:             itemID.Hex(),
			storeResult:    item,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed identifier",
			id:             "not-a-hex-id",
			storeErr:       store.ErrInvalidID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found",
			id:             primitive.NewObjectID().Hex(),
			storeErr:       store.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "store failure",
			id:             itemID.Hex(),
			storeErr:       errors.New("socket timeout"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewItemHandler(&mockItemStore{
				getByIDFn: func(ctx context.Context, id string) (*domain.Item, error) {
					assert.Equal(t, tc.id, id)
					return tc.storeResult, tc.storeErr
				},
			}, slog.Default())

			req := newRequestWithID("GET", "/products/"+tc.id, tc.id, nil)
			rr := httptest.NewRecorder()
			handler.GetItem(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var got domain.Item
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, itemID, got.ID)
				assert.Equal(t, "Rice", got.FoodName)
				assert.Equal(t, "5kg", got.FoodQuantity)
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	t.Run("insert returns assigned identifier", func(t *testing.T) {
		assignedID := primitive.NewObjectID().Hex()
		var stored *domain.Item
		handler := NewItemHandler(&mockItemStore{
			createFn: func(ctx context.Context, item *domain.Item) (string, error) {
				stored = item
				return assignedID, nil
			},
		}, slog.Default())

		body := []byte(`{"foodName":"Rice","foodQuantity":"5kg"}`)
		req := httptest.NewRequest("POST", "/addProduct", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.AddItem(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp AddItemResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, assignedID, resp.InsertedID)

		require.NotNil(t, stored)
		assert.Equal(t, "Rice", stored.FoodName)
		assert.Equal(t, "5kg", stored.FoodQuantity)
		assert.Empty(t, stored.Status, "new items must start without a pending status")
	})

	t.Run("missing food name rejected", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			createFn: func(ctx context.Context, item *domain.Item) (string, error) {
				t.Fatal("store should not be called for invalid payloads")
				return "", nil
			},
		}, slog.Default())

		req := httptest.NewRequest("POST", "/addProduct", bytes.NewReader([]byte(`{"notes":"x"}`)))
		rr := httptest.NewRecorder()
		handler.AddItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{}, slog.Default())

		req := httptest.NewRequest("POST", "/addProduct", bytes.NewReader([]byte(`{`)))
		rr := httptest.NewRecorder()
		handler.AddItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestClaimItem(t *testing.T) {
	itemID := primitive.NewObjectID().Hex()

	t.Run("replace forces pending status and requester fields", func(t *testing.T) {
		var storedID string
		var stored *domain.Item
		handler := NewItemHandler(&mockItemStore{
			replaceFn: func(ctx context.Context, id string, item *domain.Item) error {
				storedID = id
				stored = item
				return nil
			},
		}, slog.Default())

		body := []byte(`{
			"foodName": "Rice",
			"foodQuantity": "5kg",
			"userEmail": "alice@example.com",
			"requesterEmail": "bob@example.com",
			"requesterName": "Bob",
			"requestDate": "2024-06-02"
		}`)
		req := newRequestWithID("PUT", "/products/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.ClaimItem(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, itemID, storedID)
		require.NotNil(t, stored)
		assert.Equal(t, domain.StatusPending, stored.Status,
			"a claim request must force the status to Pending")
		assert.Equal(t, "bob@example.com", stored.RequesterEmail)
		assert.Equal(t, "Bob", stored.RequesterName)
	})

	t.Run("missing requester email rejected", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			replaceFn: func(ctx context.Context, id string, item *domain.Item) error {
				t.Fatal("store should not be called for invalid payloads")
				return nil
			},
		}, slog.Default())

		body := []byte(`{"foodName":"Rice"}`)
		req := newRequestWithID("PUT", "/products/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.ClaimItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			replaceFn: func(ctx context.Context, id string, item *domain.Item) error {
				return store.ErrInvalidID
			},
		}, slog.Default())

		body := []byte(`{"foodName":"Rice","requesterEmail":"bob@example.com"}`)
		req := newRequestWithID("PUT", "/products/bad-id", "bad-id", body)
		rr := httptest.NewRecorder()
		handler.ClaimItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestEditItem(t *testing.T) {
	itemID := primitive.NewObjectID().Hex()

	t.Run("partial edit passes only provided fields", func(t *testing.T) {
		var stored *domain.ItemPatch
		handler := NewItemHandler(&mockItemStore{
			patchFn: func(ctx context.Context, id string, patch *domain.ItemPatch) error {
				stored = patch
				return nil
			},
		}, slog.Default())

		body := []byte(`{"foodName":"Lentils","notes":"half used"}`)
		req := newRequestWithID("PATCH", "/products/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.EditItem(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, stored)
		require.NotNil(t, stored.FoodName)
		assert.Equal(t, "Lentils", *stored.FoodName)
		require.NotNil(t, stored.Notes)
		assert.Equal(t, "half used", *stored.Notes)
		assert.Nil(t, stored.FoodQuantity, "absent fields must stay untouched")
		assert.Nil(t, stored.Location)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			patchFn: func(ctx context.Context, id string, patch *domain.ItemPatch) error {
				t.Fatal("store should not be called for an empty patch")
				return nil
			},
		}, slog.Default())

		req := newRequestWithID("PATCH", "/products/"+itemID, itemID, []byte(`{}`))
		rr := httptest.NewRecorder()
		handler.EditItem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateItemStatus(t *testing.T) {
	itemID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		body           string
		storeErr       error
		expectedStatus int
		expectedValue  domain.Status
	}{
		{
			name:           "valid status",
			body:           `{"status":"Claimed"}`,
			expectedStatus: http.StatusOK,
			expectedValue:  domain.StatusClaimed,
		},
		{
			name:           "status outside closed set",
			body:           `{"status":"Reserved"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing status",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "item does not exist",
			body:           `{"status":"Pending"}`,
			storeErr:       store.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotStatus domain.Status
			storeCalled := false
			handler := NewItemHandler(&mockItemStore{
				updateStatusFn: func(ctx context.Context, id string, status domain.Status) error {
					storeCalled = true
					gotStatus = status
					return tc.storeErr
				},
			}, slog.Default())

			req := newRequestWithID("PATCH", "/products/status/"+itemID, itemID, []byte(tc.body))
			rr := httptest.NewRecorder()
			handler.UpdateItemStatus(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedValue != "" {
				require.True(t, storeCalled)
				assert.Equal(t, tc.expectedValue, gotStatus)
			}
			if tc.expectedStatus == http.StatusBadRequest {
				assert.False(t, storeCalled, "invalid payloads must not reach the store")
			}
		})
	}
}

func TestUpdateItemRequesterEmail(t *testing.T) {
	itemID := primitive.NewObjectID().Hex()

	t.Run("success", func(t *testing.T) {
		var gotEmail string
		handler := NewItemHandler(&mockItemStore{
			updateRequesterEmailFn: func(ctx context.Context, id string, email string) error {
				gotEmail = email
				return nil
			},
		}, slog.Default())

		body := []byte(`{"requesterEmail":"bob@example.com"}`)
		req := newRequestWithID("PATCH", "/products/requesterEmail/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.UpdateItemRequesterEmail(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "bob@example.com", gotEmail)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			updateRequesterEmailFn: func(ctx context.Context, id string, email string) error {
				t.Fatal("store should not be called for invalid payloads")
				return nil
			},
		}, slog.Default())

		body := []byte(`{"requesterEmail":"not-an-email"}`)
		req := newRequestWithID("PATCH", "/products/requesterEmail/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.UpdateItemRequesterEmail(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("item does not exist", func(t *testing.T) {
		handler := NewItemHandler(&mockItemStore{
			updateRequesterEmailFn: func(ctx context.Context, id string, email string) error {
				return store.ErrItemNotFound
			},
		}, slog.Default())

		body := []byte(`{"requesterEmail":"bob@example.com"}`)
		req := newRequestWithID("PATCH", "/products/requesterEmail/"+itemID, itemID, body)
		rr := httptest.NewRecorder()
		handler.UpdateItemRequesterEmail(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	itemID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		storeCount     int64
		storeErr       error
		expectedStatus int
	}{
		{
			name:           "existing item",
			storeCount:     1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-existent item completes with zero count",
			storeCount:     0,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed identifier",
			storeErr:       store.ErrInvalidID,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewItemHandler(&mockItemStore{
				deleteFn: func(ctx context.Context, id string) (int64, error) {
					return tc.storeCount, tc.storeErr
				},
			}, slog.Default())

			req := newRequestWithID("DELETE", "/products/"+itemID, itemID, nil)
			rr := httptest.NewRecorder()
			handler.DeleteItem(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp DeleteItemResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tc.storeCount, resp.DeletedCount)
			}
		})
	}
}
