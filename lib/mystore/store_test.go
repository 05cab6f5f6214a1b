package mystore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

type Person struct {
	UID       string
	Name      string
	Age       int
	Active    bool
	CreatedAt time.Time
}

var (
	createdAt = time.Date(2023, time.February, 27, 23, 58, 59, 0, time.UTC)
	person    = Person{UID: "123", Name: "Marc", Age: 42, Active: true, CreatedAt: createdAt}
	person2   = Person{UID: "456", Name: "Eva", Age: 12, Active: false, CreatedAt: createdAt.Add(-time.Hour)}
	person3   = Person{UID: "789", Name: "Pien", Age: 10, Active: true, CreatedAt: createdAt.Add(time.Hour)}
)

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()
	ps, cleanup, err := NewInMemoryStore[Person](c)
	require.NoError(t, err)
	defer cleanup()

	testStore(t, ps)
}

func TestSQLStore(t *testing.T) {
	c := context.TODO()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	ps, cleanup, err := newSQLStore[Person](c, sqlite.Open(dsn))
	require.NoError(t, err)
	defer cleanup()

	sqlDB, err := ps.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	testStore(t, ps)
}

func testStore(t *testing.T, ps Store[Person]) {
	c := context.TODO()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := ps.Get(c, person.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err := ps.Put(c, person.UID, person)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		p, found, err := ps.Get(c, person.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Marc", p.Name)
		assert.Equal(t, 42, p.Age)
		assert.True(t, p.CreatedAt.Equal(createdAt))
	})

	t.Run("Put overwrites", func(t *testing.T) {
		updated := person
		updated.Age = 43
		err := ps.Put(c, person.UID, updated)
		assert.NoError(t, err)

		p, found, err := ps.Get(c, person.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 43, p.Age)
	})

	t.Run("List", func(t *testing.T) {
		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Query with filter and order", func(t *testing.T) {
		assert.NoError(t, ps.Put(c, person2.UID, person2))
		assert.NoError(t, ps.Put(c, person3.UID, person3))

		active, err := ps.Query(c, []Filter{{Field: "Active", Compare: "=", Value: true}}, "CreatedAt")
		assert.NoError(t, err)
		assert.Len(t, active, 2)
		assert.Equal(t, "123", active[0].UID)
		assert.Equal(t, "789", active[1].UID)

		all, err := ps.Query(c, nil, "-Age")
		assert.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, []string{"123", "456", "789"}, []string{all[0].UID, all[1].UID, all[2].UID})
	})

	t.Run("Query unsupported comparison", func(t *testing.T) {
		_, err := ps.Query(c, []Filter{{Field: "Age", Compare: ">", Value: 10}}, "")
		assert.Error(t, err)
	})

	t.Run("Transaction commits", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			p, found, err := ps.Get(c, person2.UID)
			if err != nil {
				return err
			}
			assert.True(t, found)
			p.Age++
			return ps.Put(c, p.UID, p)
		})
		assert.NoError(t, err)

		p, _, err := ps.Get(c, person2.UID)
		assert.NoError(t, err)
		assert.Equal(t, 13, p.Age)
	})

	t.Run("Transaction returns error", func(t *testing.T) {
		errAbort := errors.New("abort")
		err := ps.RunInTransaction(c, func(c context.Context) error {
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)
	})

	t.Run("Delete", func(t *testing.T) {
		err := ps.Delete(c, person3.UID)
		assert.NoError(t, err)

		_, found, err := ps.Get(c, person3.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("List returns every entity", func(t *testing.T) {
		for i := 0; i < 150; i++ {
			uid := fmt.Sprintf("bulk-%03d", i)
			assert.NoError(t, ps.Put(c, uid, Person{UID: uid, Name: uid, CreatedAt: createdAt}))
		}

		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Len(t, all, 152)
	})
}

func TestInMemoryTransactionsAcrossStores(t *testing.T) {
	c := context.TODO()
	people, _, _ := NewInMemoryStore[Person](c)
	others, _, _ := NewInMemoryStore[Person](c)

	err := people.RunInTransaction(c, func(c context.Context) error {
		// must lock itself instead of assuming the transaction is its own
		err := others.Put(c, person.UID, person)
		if err != nil {
			return err
		}
		return people.Put(c, person2.UID, person2)
	})
	assert.NoError(t, err)

	_, found, _ := others.Get(c, person.UID)
	assert.True(t, found)
	_, found, _ = people.Get(c, person2.UID)
	assert.True(t, found)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Person", kindOf[Person]())
	assert.Equal(t, "string", kindOf[string]())
}
