package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"musicstore/internal/domain"
	"musicstore/internal/events"
	"musicstore/internal/storage"
)

type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKV) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockKV) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockKV) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockKV) Close() error { return nil }

type recorder struct {
	changes []events.Change
}

func (r *recorder) Publish(c events.Change) { r.changes = append(r.changes, c) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newProductStore(t *testing.T, seed ...domain.Product) (*ProductStore, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := NewStore[domain.Product](KeyProducts, WithKV(kv), WithIDGenerator(sequentialIDs()))
	require.NoError(t, s.Hydrate(context.Background(), seed))
	return s, kv
}

func TestStore_HydrateSeedsMissingKey(t *testing.T) {
	s, kv := newProductStore(t, domain.Product{ID: "p1", Name: "Strat"})

	assert.Equal(t, 1, s.Len())
	raw, err := kv.Get(context.Background(), KeyProducts)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Strat"`)
}

func TestStore_HydratePrefersPersistedValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, KeyProducts, []byte(`[{"id":"saved","name":"Jazz Bass"}]`)))

	s := NewStore[domain.Product](KeyProducts, WithKV(kv))
	require.NoError(t, s.Hydrate(ctx, []domain.Product{{ID: "seed"}}))

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, "saved", items[0].ID)
}

func TestStore_HydrateRejectsCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, KeyProducts, []byte(`{not json`)))

	s := NewStore[domain.Product](KeyProducts, WithKV(kv))
	assert.Error(t, s.Hydrate(ctx, nil))
}

func TestStore_CreateAssignsFreshID(t *testing.T) {
	s, kv := newProductStore(t)

	created, err := s.Create(context.Background(), domain.Product{ID: "caller-id", Name: "Cajón"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)

	got, err := s.GetByID("id-1")
	require.NoError(t, err)
	assert.Equal(t, "Cajón", got.Name)

	raw, _ := kv.Get(context.Background(), KeyProducts)
	assert.Contains(t, string(raw), `"id-1"`)
}

func TestStore_CreateThenDeleteRestoresContents(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductStore(t,
		domain.Product{ID: "a", Name: "A"},
		domain.Product{ID: "b", Name: "B"},
	)
	before := s.List()

	created, err := s.Create(ctx, domain.Product{Name: "C"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))

	assert.ElementsMatch(t, before, s.List())
}

func TestStore_UpsertMissingIDAppends(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductStore(t, domain.Product{ID: "a", Name: "A"})

	rec, created, err := s.Upsert(ctx, []byte(`{"id":"z","name":"Zildjian","price":120}`), nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "z", rec.ID)

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "z", items[1].ID)
}

func TestStore_UpsertWithoutIDBehavesLikeCreate(t *testing.T) {
	s, _ := newProductStore(t)

	rec, created, err := s.Upsert(context.Background(), []byte(`{"name":"Pedal"}`), nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "Pedal", rec.Name)
}

func TestStore_UpsertKeepsAbsentFields(t *testing.T) {
	ctx := context.Background()
	prev := 900.0
	s, _ := newProductStore(t, domain.Product{
		ID: "a", Name: "Les Paul", Brand: "Gibson", Price: 800, PreviousPrice: &prev, Stock: 3, Active: true,
	})

	rec, created, err := s.Upsert(ctx, []byte(`{"id":"a","price":750,"active":false}`), nil)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, 750.0, rec.Price)
	assert.False(t, rec.Active)
	assert.Equal(t, "Les Paul", rec.Name)
	assert.Equal(t, "Gibson", rec.Brand)
	assert.Equal(t, 3, rec.Stock)
	require.NotNil(t, rec.PreviousPrice)
	assert.Equal(t, 900.0, *rec.PreviousPrice)

	stored, _ := s.GetByID("a")
	assert.Equal(t, rec, stored)
}

func TestStore_UpsertRejectsNonObject(t *testing.T) {
	s, _ := newProductStore(t)

	_, _, err := s.Upsert(context.Background(), []byte(`[1,2]`), nil)
	assert.ErrorIs(t, err, ErrInvalidPatch)

	_, _, err = s.Upsert(context.Background(), []byte(`{"id":5}`), nil)
	assert.ErrorIs(t, err, ErrInvalidPatch)
	assert.Equal(t, 0, s.Len())
}

func TestStore_UpdateAndDeleteMissReportNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductStore(t, domain.Product{ID: "a"})

	_, err := s.Update(ctx, domain.Product{ID: "nope", Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestStore_UpdateReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductStore(t, domain.Product{ID: "a", Name: "Old", Brand: "Yamaha"})

	_, err := s.Update(ctx, domain.Product{ID: "a", Name: "New"})
	require.NoError(t, err)

	got, _ := s.GetByID("a")
	assert.Equal(t, "New", got.Name)
	assert.Empty(t, got.Brand)
}

func TestStore_DuplicateIDsFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newProductStore(t,
		domain.Product{ID: "dup", Name: "first"},
		domain.Product{ID: "dup", Name: "second"},
	)

	got, err := s.GetByID("dup")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)

	require.NoError(t, s.Delete(ctx, "dup"))
	got, err = s.GetByID("dup")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestStore_PersistFailureLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := new(mockKV)
	kv.On("Get", mock.Anything, KeyProducts).Return([]byte(`[{"id":"a","name":"A"}]`), nil)
	kv.On("Put", mock.Anything, KeyProducts, mock.Anything).Return(errors.New("disk full"))

	pub := &recorder{}
	s := NewStore[domain.Product](KeyProducts, WithKV(kv), WithPublisher(pub))
	require.NoError(t, s.Hydrate(ctx, nil))

	_, err := s.Create(ctx, domain.Product{Name: "B"})
	assert.ErrorContains(t, err, "disk full")
	assert.Error(t, s.Delete(ctx, "a"))
	_, _, err = s.Upsert(ctx, []byte(`{"id":"a","name":"Z"}`), nil)
	assert.Error(t, err)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)
	assert.Empty(t, pub.changes)
	kv.AssertExpectations(t)
}

func TestStore_PublishesChanges(t *testing.T) {
	ctx := context.Background()
	pub := &recorder{}
	s := NewStore[domain.Tutor](KeyTutors, WithPublisher(pub), WithIDGenerator(sequentialIDs()))
	require.NoError(t, s.Hydrate(ctx, nil))

	created, err := s.Create(ctx, domain.Tutor{Name: "Ana"})
	require.NoError(t, err)
	_, _, err = s.Upsert(ctx, []byte(`{"id":"id-1","hourly_rate":15000}`), nil)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))
	require.NoError(t, s.Replace(ctx, nil))

	ops := make([]events.Op, 0, len(pub.changes))
	for _, c := range pub.changes {
		assert.Equal(t, KeyTutors, c.Collection)
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []events.Op{events.OpCreate, events.OpUpdate, events.OpDelete, events.OpReplace}, ops)
}

func TestStore_ConcurrentCreatesPublishInCommitOrder(t *testing.T) {
	ctx := context.Background()
	pub := &recorder{}
	s := NewStore[domain.Product](KeyProducts, WithKV(storage.NewMemoryKV()), WithPublisher(pub))
	require.NoError(t, s.Hydrate(ctx, nil))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Create(ctx, domain.Product{Name: fmt.Sprintf("p%d", n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items := s.List()
	require.Len(t, pub.changes, len(items))
	for i, c := range pub.changes {
		assert.Equal(t, items[i].ID, c.ID, "event %d", i)
	}
}

func TestStore_ListIsACopy(t *testing.T) {
	s, _ := newProductStore(t, domain.Product{ID: "a", Name: "A"})

	items := s.List()
	items[0].Name = "mutated"

	got, _ := s.GetByID("a")
	assert.Equal(t, "A", got.Name)
}

func TestStores_HydrateAndSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	stores := NewStores(kv, nil)

	require.NoError(t, stores.Hydrate(ctx, Seed{
		Tutors:   []domain.Tutor{{ID: "t1", Name: "Ana"}},
		Products: []domain.Product{{ID: "p1", Name: "Strat"}},
	}))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		KeyTutors, KeyProducts, KeyCourses, KeyServices, KeyNews, KeyUsers, KeyAdminUsers,
	}, keys)

	require.NoError(t, stores.Replace(ctx, Seed{News: []domain.News{{ID: "n1", Title: "Hola"}}}))
	snap := stores.Snapshot()
	assert.Len(t, snap.Tutors, 1)
	assert.Len(t, snap.News, 1)
}
