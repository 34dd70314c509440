// Package memory implementa los puertos de persistencia en memoria con transacciones
// todo-o-nada (snapshot + restore). Se usa con DB_DRIVER=memory y en tests.
package memory

import (
	"sync"

	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

type state struct {
	products  map[int64]entity.Product
	stocks    map[int64]entity.Stock
	positions map[int64]entity.StockPosition

	productSeq  int64
	stockSeq    int64
	positionSeq int64
}

func newState() *state {
	return &state{
		products:  map[int64]entity.Product{},
		stocks:    map[int64]entity.Stock{},
		positions: map[int64]entity.StockPosition{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:    make(map[int64]entity.Product, len(s.products)),
		stocks:      make(map[int64]entity.Stock, len(s.stocks)),
		positions:   make(map[int64]entity.StockPosition, len(s.positions)),
		productSeq:  s.productSeq,
		stockSeq:    s.stockSeq,
		positionSeq: s.positionSeq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.positions {
		c.positions[k] = v
	}
	return c
}

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access serializa el acceso al estado. Dentro de una transacción el lock ya lo tiene TxRunner.
type access struct {
	store *Store
	inTx  bool
}

func (a access) do(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.st)
}

// PositionCount cantidad total de posiciones almacenadas (útil en tests de rollback).
func (s *Store) PositionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.positions)
}

// StockCount cantidad total de stocks almacenados.
func (s *Store) StockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.stocks)
}
