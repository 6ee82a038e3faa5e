package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arkhipovd/storefront/internal/models"
)

// MemoryStore keeps everything in maps guarded by one mutex. IDs are
// monotonic counters and are never reused after a delete.
type MemoryStore struct {
	mu sync.Mutex

	users    map[uint]models.User
	products map[uint]models.Product

	nextUserID    uint
	nextProductID uint

	// order of product insertion, so Products() is stable
	productOrder []uint

	sessionUserID uint
	sessionToken  string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]models.User),
		products:      make(map[uint]models.Product),
		nextUserID:    1,
		nextProductID: 1,
	}
}

func (s *MemoryStore) User(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, data models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	u := models.User{
		ID:       s.nextUserID,
		Username: data.Username,
		Email:    data.Email,
		Password: data.Password,
		Role:     role,
	}
	s.nextUserID++
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) Products(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0, len(s.products))
	for _, id := range s.productOrder {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) Product(_ context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var out []models.Product
	for _, id := range s.productOrder {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			(p.Brand != nil && strings.Contains(strings.ToLower(*p.Brand), q)) {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

func (s *MemoryStore) ProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for _, id := range s.productOrder {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, data models.InsertProduct) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := newProduct(data)
	p.ID = s.nextProductID
	p.CreatedAt = now
	p.UpdatedAt = now
	s.nextProductID++

	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
	return &p, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	applyPatch(&p, patch)
	p.ID = id
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return &p, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) SaveSession(_ context.Context, userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionUserID = userID
	s.sessionToken = token
	return nil
}

func (s *MemoryStore) LoadSession(_ context.Context) (uint, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionUserID == 0 {
		return 0, "", ErrNotFound
	}
	return s.sessionUserID, s.sessionToken, nil
}

func (s *MemoryStore) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionUserID = 0
	s.sessionToken = ""
	return nil
}
