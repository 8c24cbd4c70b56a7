package cart

import (
	"context"
	"errors"
)

var errUnavailable = errors.New("store unavailable")

type memSession struct {
	data    map[string]string
	failPut bool
}

func newMemSession() *memSession {
	return &memSession{data: map[string]string{}}
}

func (m *memSession) Get(_ context.Context, key string) (string, bool, error) {
	blob, found := m.data[key]
	return blob, found, nil
}

func (m *memSession) Put(_ context.Context, key, blob string) error {
	if m.failPut {
		return errUnavailable
	}
	m.data[key] = blob
	return nil
}

func (m *memSession) Forget(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type memRecords struct {
	rows     map[Scope]map[string]Row
	failRead bool
}

func newMemRecords() *memRecords {
	return &memRecords{rows: map[Scope]map[string]Row{}}
}

func (m *memRecords) bucket(scope Scope) map[string]Row {
	if _, exists := m.rows[scope]; !exists {
		m.rows[scope] = map[string]Row{}
	}
	return m.rows[scope]
}

func (m *memRecords) FindOne(_ context.Context, scope Scope, itemID string) (Row, bool, error) {
	if m.failRead {
		return Row{}, false, errUnavailable
	}
	row, found := m.bucket(scope)[itemID]
	return row, found, nil
}

func (m *memRecords) FindAll(_ context.Context, scope Scope) ([]Row, error) {
	if m.failRead {
		return nil, errUnavailable
	}
	var list []Row
	for _, row := range m.bucket(scope) {
		list = append(list, row)
	}
	return list, nil
}

func (m *memRecords) Upsert(_ context.Context, row Row) error {
	b := m.bucket(row.Scope)
	if current, exists := b[row.ItemID]; exists {
		row.Quantity += current.Quantity
	}
	b[row.ItemID] = row
	return nil
}

func (m *memRecords) IncrementQuantity(_ context.Context, scope Scope, itemID string, delta int) (bool, error) {
	b := m.bucket(scope)
	row, exists := b[itemID]
	if !exists {
		return false, nil
	}
	row.Quantity += delta
	b[itemID] = row
	return true, nil
}

func (m *memRecords) DecrementQuantity(_ context.Context, scope Scope, itemID string, delta int) (bool, error) {
	b := m.bucket(scope)
	row, exists := b[itemID]
	if !exists {
		return false, nil
	}
	row.Quantity = clampQuantity(row.Quantity - delta)
	b[itemID] = row
	return true, nil
}

func (m *memRecords) DeleteOne(_ context.Context, scope Scope, itemID string) error {
	delete(m.bucket(scope), itemID)
	return nil
}

func (m *memRecords) DeleteAll(_ context.Context, scope Scope) error {
	delete(m.rows, scope)
	return nil
}
