// Package memory implementa los puertos de repositorio en memoria.
// Reproduce las restricciones del esquema PostgreSQL (secuencias, llaves foráneas,
// email único) para poder ejercitar casos de uso y handlers sin base de datos.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ inventory.TxRunner            = (*TxRunner)(nil)
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	products    map[string]*entity.Product
	movements   []*entity.Movement
	users       map[string]*entity.User
	productSeq  int64
	movementSeq int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

// Products adaptador del catálogo.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements adaptador del ledger.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Users adaptador de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// TxRunner ejecuta fn con los repositorios del almacén. No hay rollback.
type TxRunner struct {
	s *Store
}

// TxRunner devuelve un runner compatible con inventory.TxRunner.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.s.Movements(), r.s.Products())
}

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) NextID(_ context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.productSeq++
	return entity.FormatSequentialID(entity.ProductIDPrefix, r.s.productSeq), nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) List(_ context.Context, onlyActive bool) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if onlyActive && !p.Active {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return idLess(list[i].ID, list[j].ID) })
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

// MovementRepo ledger en memoria.
type MovementRepo struct {
	s *Store
}

func (r *MovementRepo) NextID(_ context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movementSeq++
	return entity.FormatSequentialID(entity.MovementIDPrefix, r.s.movementSeq), nil
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.movements {
		if existing.ID == m.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.movements = append(r.s.movements, cloneMovement(m))
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, since *time.Time) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if since != nil && m.Date.Before(*since) {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

func (r *MovementRepo) List(_ context.Context, productID string) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return idLess(list[j].ID, list[i].ID)
		}
		return list[i].Date.After(list[j].Date)
	})
	return list, nil
}

// Append inserta un movimiento tal cual (incluida cantidad nula), para sembrar filas heredadas.
func (r *MovementRepo) Append(m *entity.Movement) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, cloneMovement(m))
}

// UserRepo usuarios en memoria; email único.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	if m.Quantity != nil {
		q := *m.Quantity
		cp.Quantity = &q
	}
	return &cp
}

// idLess ordena P2 antes que P10 (misma regla que ORDER BY length(id), id).
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
