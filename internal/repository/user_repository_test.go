package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-dashboard-service/internal/config"
	"user-dashboard-service/internal/entity"
	"user-dashboard-service/migrations"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	// every new connection to :memory: would be a fresh, empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.AutoMigrateUsers(0, db))
	require.NoError(t, migrations.AutoMigrateAccounts(0, db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUsers(t *testing.T, repo *UserRepository, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := repo.CreateUser(context.Background(), &entity.User{Name: name, DateOfBirth: date(2000, time.January, i+1)})
		require.NoError(t, err)
	}
}

func userIDs(t *testing.T, repo *UserRepository) map[int]string {
	t.Helper()
	users, err := repo.ListUsers(context.Background(), 1000)
	require.NoError(t, err)
	out := make(map[int]string, len(users))
	for _, u := range users {
		out[u.ID] = u.Name
	}
	return out
}

func TestCreateUserAssignsNextID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	first, err := repo.CreateUser(ctx, &entity.User{Name: "A", DateOfBirth: date(2000, time.July, 28)})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := repo.CreateUser(ctx, &entity.User{Name: "B", DateOfBirth: date(1999, time.March, 1)})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	got, err := repo.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 2000, got.DateOfBirth.Year())
	assert.Equal(t, time.July, got.DateOfBirth.Month())
	assert.Equal(t, 28, got.DateOfBirth.Day())
}

func TestListUsersOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	empty, err := repo.ListUsers(ctx, 20)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 0; i < 25; i++ {
		_, err := repo.CreateUser(ctx, &entity.User{Name: "user", DateOfBirth: date(1990, time.May, 5)})
		require.NoError(t, err)
	}

	users, err := repo.ListUsers(ctx, 20)
	require.NoError(t, err)
	require.Len(t, users, 20)
	for i, u := range users {
		assert.Equal(t, i+1, u.ID)
	}
}

func TestDeleteUserRenumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A", "B", "C", "D")

	deleted, err := repo.DeleteUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "B", deleted.Name)

	assert.Equal(t, map[int]string{1: "A", 2: "C", 3: "D"}, userIDs(t, repo))
}

func TestDeleteFirstThenInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A", "B", "C")

	_, err := repo.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "B", 2: "C"}, userIDs(t, repo))

	d, err := repo.CreateUser(ctx, &entity.User{Name: "D", DateOfBirth: date(2001, time.February, 3)})
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID)
}

func TestDeleteLastUserResetsToOne(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A")

	_, err := repo.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, userIDs(t, repo))

	u, err := repo.CreateUser(ctx, &entity.User{Name: "B", DateOfBirth: date(2001, time.February, 3)})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
}

func TestDeleteMissingUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A", "B")

	_, err := repo.DeleteUser(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, map[int]string{1: "A", 2: "B"}, userIDs(t, repo))
}

func TestConcurrentDeletesStayDense(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A", "B", "C", "D", "E", "F", "G", "H")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// id 1 always exists while at least one user remains
			_, err := repo.DeleteUser(ctx, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, map[int]string{1: "E", 2: "F", 3: "G", 4: "H"}, userIDs(t, repo))
}

func TestUpdateUserKeepsID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	seedUsers(t, repo, "A", "B")

	_, err := repo.UpdateUser(ctx, &entity.User{ID: 2, Name: "Bee", DateOfBirth: date(1980, time.December, 31)})
	require.NoError(t, err)

	got, err := repo.GetUserByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bee", got.Name)
	assert.Equal(t, 1980, got.DateOfBirth.Year())
	assert.Equal(t, map[int]string{1: "A", 2: "Bee"}, userIDs(t, repo))

	_, err = repo.UpdateUser(ctx, &entity.User{ID: 9, Name: "X", DateOfBirth: date(1980, time.December, 31)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDSN(t *testing.T) {
	dsn, err := DSN(config.Database{Driver: DriverMySQL, Host: "db", Port: "3306", User: "root", Pass: "pw", Name: "user-db"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "root:pw@tcp(db:3306)/user-db?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")

	dsn, err = DSN(config.Database{Driver: DriverSQLite, Path: "users.db"})
	require.NoError(t, err)
	assert.Contains(t, dsn, "file:users.db")

	_, err = DSN(config.Database{Driver: "postgres"})
	assert.Error(t, err)
}
