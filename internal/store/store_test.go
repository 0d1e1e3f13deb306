package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"dealership/internal/db"
	"dealership/internal/models"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Integration tests run against a throwaway PostgreSQL:
//
//	GO_TEST_INTEGRATION=1 go test ./internal/store -v -count=1

// startPostgres boots postgres:16-alpine, applies the migrations and returns
// a store over it.
func startPostgres(t *testing.T) *Postgres {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return conn.PingContext(ctx) == nil }, 30*time.Second, 500*time.Millisecond)
	require.NoError(t, db.Migrate(ctx, conn))

	return NewPostgres(conn)
}

func TestIntegration_Accounts(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	acc, err := st.CreateAccount(ctx, models.NewAccountRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "A@B.com", PasswordHash: "h1",
	})
	require.NoError(t, err)
	require.NotZero(t, acc.ID)
	require.Equal(t, "a@b.com", acc.Email)
	require.Equal(t, models.RoleClient, acc.Role)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := st.CreateAccount(ctx, models.NewAccountRequest{
			FirstName: "Eve", LastName: "Other", Email: "a@b.com", PasswordHash: "h2",
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		first, err := st.AccountByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		require.Equal(t, acc.ID, first.ID)
		require.Equal(t, "Ada", first.FirstName)
		require.Equal(t, "h1", first.PasswordHash)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := st.AccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, acc, got)

		_, err = st.AccountByEmail(ctx, "nobody@b.com")
		require.ErrorIs(t, err, ErrNotFound)
		_, err = st.AccountByID(ctx, acc.ID+1000)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update profile and password", func(t *testing.T) {
		upd, err := st.UpdateProfile(ctx, acc.ID, models.ProfileUpdate{FirstName: "Augusta", LastName: "King", Email: "ada@b.com"})
		require.NoError(t, err)
		require.Equal(t, "Augusta", upd.FirstName)
		require.Equal(t, "ada@b.com", upd.Email)

		require.NoError(t, st.UpdatePassword(ctx, acc.ID, "h3"))
		got, err := st.AccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, "h3", got.PasswordHash)

		require.ErrorIs(t, st.UpdatePassword(ctx, acc.ID+1000, "h4"), ErrNotFound)
	})

	t.Run("update profile onto a taken email", func(t *testing.T) {
		other, err := st.CreateAccount(ctx, models.NewAccountRequest{
			FirstName: "Bob", LastName: "Builder", Email: "bob@b.com", PasswordHash: "h5",
		})
		require.NoError(t, err)

		_, err = st.UpdateProfile(ctx, other.ID, models.ProfileUpdate{FirstName: "Bob", LastName: "Builder", Email: "ada@b.com"})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestIntegration_InventoryAndMessages(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	classes, err := st.ListClassifications(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, classes)

	cls, err := st.AddClassification(ctx, "Electric")
	require.NoError(t, err)
	_, err = st.AddClassification(ctx, "Electric")
	require.ErrorIs(t, err, ErrAlreadyExists)

	v, err := st.AddVehicle(ctx, models.Vehicle{
		ClassificationID: cls.ID, Make: "Tesla", Model: "Model 3", Year: 2022,
		Description: "Quiet.", Image: "/images/vehicles/no-image.png", Thumbnail: "/images/vehicles/no-image-tn.png",
		Price: 38990.5, Miles: 12000, Color: "White",
	})
	require.NoError(t, err)
	require.NotZero(t, v.ID)

	got, err := st.VehicleByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, "Electric", got.ClassificationName)
	require.InDelta(t, 38990.5, got.Price, 0.001)

	v.Price = 35000
	upd, err := st.UpdateVehicle(ctx, *v)
	require.NoError(t, err)
	require.InDelta(t, 35000, upd.Price, 0.001)

	list, err := st.VehiclesByClassification(ctx, cls.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = st.VehicleByID(ctx, v.ID+1000)
	require.ErrorIs(t, err, ErrNotFound)

	acc, err := st.CreateAccount(ctx, models.NewAccountRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@b.com", PasswordHash: "h1",
	})
	require.NoError(t, err)

	_, err = st.InsertMessage(ctx, acc.ID, "First impressions.")
	require.NoError(t, err)
	_, err = st.InsertMessage(ctx, acc.ID, "Second thoughts.")
	require.NoError(t, err)

	msgs, err := st.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "ada@b.com", msgs[0].AuthorEmail)
}
