package cart

import (
	"encoding/json"
	"testing"

	"beautyvault/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRepositoryLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	payload, err := json.Marshal(models.PersistedCart{
		SchemaVersion: models.CartSchemaVersion,
		CartID:        "c1",
		Items:         []models.CartItem{{ProductID: "p1", ExternalID: "wix-1", Quantity: 2}},
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM carts WHERE id = \$1`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	repo := NewSQLRepository(db)
	cart, err := repo.Load("c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", cart.CartID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "wix-1", cart.Items[0].ExternalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryLoadMissingCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload FROM carts WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	repo := NewSQLRepository(db)
	_, err = repo.Load("nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositorySaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO carts .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSQLRepository(db)
	err = repo.Save(&models.PersistedCart{
		SchemaVersion: models.CartSchemaVersion,
		CartID:        "c1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM carts WHERE id = \$1`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSQLRepository(db)
	require.NoError(t, repo.Delete("c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
