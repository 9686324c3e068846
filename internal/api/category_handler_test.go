package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskmaster-api/internal/domain"
	"github.com/taskmaster/taskmaster-api/internal/service"
	"github.com/taskmaster/taskmaster-api/internal/store"
)

func newCategoryRouter(userID uuid.UUID, svc service.CategoryService) http.Handler {
	handler := NewCategoryHandler(svc, discardLogger())

	r := chi.NewRouter()
	r.Use(injectUser(userID))
	r.Get("/categories", handler.ListCategories)
	r.Post("/categories", handler.CreateCategory)
	r.Get("/categories/{id}", handler.GetCategory)
	r.Put("/categories/{id}", handler.UpdateCategory)
	r.Delete("/categories/{id}", handler.DeleteCategory)
	return r
}

func TestCreateCategoryEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("valid payload returns 201", func(t *testing.T) {
		svc := &mockCategoryService{
			createFn: func(ctx context.Context, gotUser uuid.UUID, name string) (*domain.Category, error) {
				assert.Equal(t, userID, gotUser)
				return &domain.Category{ID: uuid.New(), UserID: gotUser, Name: name}, nil
			},
		}

		rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodPost, "/categories", map[string]string{"name": "Work"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp CategoryResponse
		decodeResponse(t, rec, &resp)
		assert.Equal(t, "Work", resp.Name)
		assert.Equal(t, userID, resp.UserID)
	})

	t.Run("empty name returns 400", func(t *testing.T) {
		rec := doRequest(t, newCategoryRouter(userID, &mockCategoryService{}), http.MethodPost, "/categories", map[string]string{"name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCategoryEndpoint(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("own category returns 200", func(t *testing.T) {
		svc := &mockCategoryService{
			getFn: func(ctx context.Context, gotUser, gotCategory uuid.UUID) (*domain.Category, error) {
				require.Equal(t, categoryID, gotCategory)
				return &domain.Category{ID: gotCategory, UserID: gotUser, Name: "Work"}, nil
			},
		}

		rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodGet, "/categories/"+categoryID.String(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign category returns 404", func(t *testing.T) {
		svc := &mockCategoryService{
			getFn: func(ctx context.Context, gotUser, gotCategory uuid.UUID) (*domain.Category, error) {
				return nil, store.ErrCategoryNotFound
			},
		}

		rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodGet, "/categories/"+categoryID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateCategoryEndpoint(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	svc := &mockCategoryService{
		updateFn: func(ctx context.Context, gotUser, gotCategory uuid.UUID, name string) (*domain.Category, error) {
			return &domain.Category{ID: gotCategory, UserID: gotUser, Name: name}, nil
		},
	}

	rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodPut, "/categories/"+categoryID.String(), map[string]string{"name": "Personal"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CategoryResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "Personal", resp.Name)
}

func TestDeleteCategoryEndpoint(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	svc := &mockCategoryService{
		deleteFn: func(ctx context.Context, gotUser, gotCategory uuid.UUID) error {
			return nil
		},
	}

	rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodDelete, "/categories/"+categoryID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListCategoriesEndpoint(t *testing.T) {
	userID := uuid.New()

	svc := &mockCategoryService{
		listFn: func(ctx context.Context, gotUser uuid.UUID) ([]*domain.Category, error) {
			return []*domain.Category{
				{ID: uuid.New(), UserID: gotUser, Name: "Personal"},
				{ID: uuid.New(), UserID: gotUser, Name: "Work"},
			}, nil
		},
	}

	rec := doRequest(t, newCategoryRouter(userID, svc), http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []CategoryResponse
	decodeResponse(t, rec, &resp)
	assert.Len(t, resp, 2)
}
