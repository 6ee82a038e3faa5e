package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkhipovd/storefront/internal/models"
)

type testBackend struct {
	Storage
	SessionState
}

// backends returns a fresh instance of every Storage implementation, so
// the same contract runs against both.
func backends(t *testing.T) map[string]testBackend {
	t.Helper()

	gs, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)

	mem := NewMemoryStore()
	return map[string]testBackend{
		"memory": {Storage: mem, SessionState: mem},
		"gorm":   {Storage: gs, SessionState: gs},
	}
}

func widget() models.InsertProduct {
	inStock := true
	return models.InsertProduct{
		Name:        "Widget",
		Description: "A test widget",
		Price:       "9.99",
		Image:       "x",
		Category:    "Electronics",
		InStock:     &inStock,
	}
}

func TestCreateProduct_Defaults(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)
			require.NotZero(t, created.ID)
			assert.Equal(t, time.UTC, created.CreatedAt.Location())
			assert.Equal(t, time.UTC, created.UpdatedAt.Location())

			got, err := s.Product(ctx, created.ID)
			require.NoError(t, err)

			assert.Equal(t, "Widget", got.Name)
			assert.Equal(t, "9.99", got.Price)
			assert.True(t, got.InStock)
			assert.Equal(t, 0, got.StockQuantity)
			assert.Equal(t, "0.0", got.Rating)
			assert.Equal(t, 0, got.ReviewCount)
			assert.Equal(t, 0, got.DiscountPercentage)
			assert.Nil(t, got.Brand)
			assert.Nil(t, got.Features)
			assert.Nil(t, got.OriginalPrice)
			assert.False(t, got.CreatedAt.IsZero())
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestCreateProduct_MonotonicIDs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var lastID uint
			for i := 0; i < 5; i++ {
				p, err := s.CreateProduct(ctx, widget())
				require.NoError(t, err)
				assert.Greater(t, p.ID, lastID)
				lastID = p.ID
			}

			// delete the newest record, the freed id must not come back
			deleted, err := s.DeleteProduct(ctx, lastID)
			require.NoError(t, err)
			require.True(t, deleted)

			p, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)
			assert.Greater(t, p.ID, lastID)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)

			time.Sleep(10 * time.Millisecond)

			inStock := false
			updated, err := s.UpdateProduct(ctx, created.ID, models.ProductPatch{InStock: &inStock})
			require.NoError(t, err)

			assert.Equal(t, created.ID, updated.ID)
			assert.False(t, updated.InStock)
			assert.Equal(t, created.Name, updated.Name)
			assert.Equal(t, created.Price, updated.Price)
			assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

			got, err := s.Product(ctx, created.ID)
			require.NoError(t, err)
			assert.False(t, got.InStock)
		})
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			name := "renamed"
			_, err := s.UpdateProduct(context.Background(), 9999, models.ProductPatch{Name: &name})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)

			deleted, err := s.DeleteProduct(ctx, created.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			_, err = s.Product(ctx, created.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// second delete is a no-op
			deleted, err = s.DeleteProduct(ctx, created.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	}
}

func TestMemoryStore_DeleteCompactsOrder(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()

	var ids []uint
	for i := 0; i < 3; i++ {
		p, err := mem.CreateProduct(ctx, widget())
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	deleted, err := mem.DeleteProduct(ctx, ids[1])
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Equal(t, []uint{ids[0], ids[2]}, mem.productOrder)

	items, err := mem.Products(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[0], items[0].ID)
	assert.Equal(t, ids[2], items[1].ID)
}

func TestSearchProducts(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)

			brand := "Acme"
			_, err = s.CreateProduct(ctx, models.InsertProduct{
				Name:        "Gadget",
				Description: "A clever gadget",
				Price:       "19.99",
				Image:       "y",
				Category:    "Toys",
				Brand:       &brand,
			})
			require.NoError(t, err)

			_, err = s.CreateProduct(ctx, models.InsertProduct{
				Name:        "100% Cotton Tee",
				Description: "Plain tee",
				Price:       "24.99",
				Image:       "z",
				Category:    "Fashion",
			})
			require.NoError(t, err)

			tests := []struct {
				name  string
				query string
				want  int
			}{
				{name: "substring of name", query: "wid", want: 1},
				{name: "case insensitive", query: "WIDGET", want: 1},
				{name: "matches description", query: "clever", want: 1},
				{name: "matches category", query: "electron", want: 1},
				{name: "matches brand", query: "acme", want: 1},
				{name: "empty query returns all", query: "", want: 3},
				{name: "no match", query: "zzz", want: 0},
				{name: "underscore is a literal", query: "w_dget", want: 0},
				{name: "percent is a literal", query: "%", want: 1},
				{name: "literal percent in name", query: "0% cotton", want: 1},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.SearchProducts(ctx, tt.query)
					require.NoError(t, err)
					assert.Len(t, got, tt.want)
				})
			}
		})
	}
}

func TestProductsByCategory(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.CreateProduct(ctx, widget())
			require.NoError(t, err)

			got, err := s.ProductsByCategory(ctx, "eLeCtRoNiCs")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Widget", got[0].Name)

			// prefix is not equality
			got, err = s.ProductsByCategory(ctx, "Electro")
			require.NoError(t, err)
			assert.Empty(t, got)

			got, err = s.ProductsByCategory(ctx, "Unknown")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestCreateUser(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			u, err := s.CreateUser(ctx, models.InsertUser{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "secret123",
			})
			require.NoError(t, err)
			assert.NotZero(t, u.ID)
			assert.Equal(t, models.RoleUser, u.Role)

			byEmail, err := s.UserByEmail(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.Equal(t, u.ID, byEmail.ID)

			byName, err := s.UserByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, u.ID, byName.ID)

			_, err = s.UserByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSessionState(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, _, err := s.LoadSession(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.SaveSession(ctx, 7, "tok"))

			userID, token, err := s.LoadSession(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, "tok", token)

			// overwrite, there is only ever one session
			require.NoError(t, s.SaveSession(ctx, 8, "tok2"))
			userID, _, err = s.LoadSession(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint(8), userID)

			require.NoError(t, s.ClearSession(ctx))
			_, _, err = s.LoadSession(ctx)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSeed(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, Seed(ctx, s))

			admin, err := s.UserByEmail(ctx, "admin@example.com")
			require.NoError(t, err)
			assert.Equal(t, models.RoleAdmin, admin.Role)

			products, err := s.Products(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, products)

			// a second run must not duplicate anything
			require.NoError(t, Seed(ctx, s))
			again, err := s.Products(ctx)
			require.NoError(t, err)
			assert.Len(t, again, len(products))
		})
	}
}
