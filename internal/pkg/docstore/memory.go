package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperror "lojasocial/internal/errors"
)

type memDoc struct {
	data      []byte
	createdAt time.Time
	updatedAt time.Time
	seq       uint64
}

// MemoryStore é um store de documentos em processo, usado em desenvolvimento e nos testes.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memDoc
	watchers    map[string]map[uint64]chan struct{}
	seq         uint64
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]*memDoc),
		watchers:    make(map[string]map[uint64]chan struct{}),
		now:         time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, collection string, v interface{}) (string, error) {
	obj, err := toObject(v)
	if err != nil {
		return "", apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")
	data, _ := json.Marshal(obj)

	id := uuid.NewString()
	m.mu.Lock()
	m.seq++
	now := m.now().UTC()
	coll := m.collections[collection]
	if coll == nil {
		coll = make(map[string]*memDoc)
		m.collections[collection] = coll
	}
	coll[id] = &memDoc{data: data, createdAt: now, updatedAt: now, seq: m.seq}
	m.notifyLocked(collection)
	m.mu.Unlock()
	return id, nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return Document{}, apperror.NewNotFoundError(collection + "/" + id)
	}
	return d.document(id), nil
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, v interface{}) error {
	obj, err := toObject(v)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	delete(obj, "id")
	data, _ := json.Marshal(obj)

	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	d.data = data
	d.updatedAt = m.now().UTC()
	m.notifyLocked(collection)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	patch, err := toObject(fields)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.collections[collection][id]
	if !ok {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	var current map[string]interface{}
	if err := json.Unmarshal(d.data, &current); err != nil {
		return apperror.NewDBError("documento corrompido", err)
	}
	for k, v := range patch {
		current[k] = v
	}
	d.data, _ = json.Marshal(current)
	d.updatedAt = m.now().UTC()
	m.notifyLocked(collection)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection][id]; !ok {
		return apperror.NewNotFoundError(collection + "/" + id)
	}
	delete(m.collections[collection], id)
	m.notifyLocked(collection)
	return nil
}

func (m *MemoryStore) Find(_ context.Context, q Query) ([]Document, error) {
	var want interface{}
	if q.Field != "" {
		v, err := normalizeValue(q.Value)
		if err != nil {
			return nil, apperror.NewValidationError("valor de filtro inválido")
		}
		want = v
	}

	type row struct {
		doc Document
		seq uint64
		key interface{}
	}

	m.mu.RLock()
	rows := make([]row, 0, len(m.collections[q.Collection]))
	for id, d := range m.collections[q.Collection] {
		var fields map[string]interface{}
		if q.Field != "" || (q.OrderBy != "" && q.OrderBy != FieldCreatedAt) {
			if err := json.Unmarshal(d.data, &fields); err != nil {
				m.mu.RUnlock()
				return nil, apperror.NewDBError("documento corrompido", err)
			}
		}
		if q.Field != "" && compareJSON(fields[q.Field], want) != 0 {
			continue
		}
		r := row{doc: d.document(id), seq: d.seq}
		if q.OrderBy != "" && q.OrderBy != FieldCreatedAt {
			r.key = fields[q.OrderBy]
		}
		rows = append(rows, r)
	}
	m.mu.RUnlock()

	byField := q.OrderBy != "" && q.OrderBy != FieldCreatedAt
	sort.SliceStable(rows, func(i, j int) bool {
		c := 0
		if byField {
			c = compareJSON(rows[i].key, rows[j].key)
		}
		if c == 0 {
			c = compareUint(rows[i].seq, rows[j].seq)
		}
		if q.Desc {
			return c > 0
		}
		return c < 0
	})

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	out := make([]Document, len(rows))
	for i, r := range rows {
		out[i] = r.doc
	}
	return out, nil
}

func (m *MemoryStore) Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Subscription, error) {
	events := make(chan struct{}, 1)

	m.mu.Lock()
	m.seq++
	key := m.seq
	if m.watchers[q.Collection] == nil {
		m.watchers[q.Collection] = make(map[uint64]chan struct{})
	}
	m.watchers[q.Collection][key] = events
	m.mu.Unlock()

	stop := func() {
		m.mu.Lock()
		delete(m.watchers[q.Collection], key)
		m.mu.Unlock()
	}
	find := func(ctx context.Context) ([]Document, error) { return m.Find(ctx, q) }
	return runSubscription(ctx, find, events, nil, stop, onSnapshot, onError), nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

// notifyLocked sinaliza as subscrições da coleção sem bloquear; exige m.mu adquirido.
func (m *MemoryStore) notifyLocked(collection string) {
	for _, ch := range m.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (d *memDoc) document(id string) Document {
	data := make([]byte, len(d.data))
	copy(data, d.data)
	return Document{ID: id, Data: data, CreatedAt: d.createdAt, UpdatedAt: d.updatedAt}
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareJSON ordena valores JSON genéricos; nulos/ausentes ficam primeiro.
func compareJSON(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	ra, _ := json.Marshal(a)
	rb, _ := json.Marshal(b)
	switch {
	case string(ra) < string(rb):
		return -1
	case string(ra) > string(rb):
		return 1
	}
	return 0
}
