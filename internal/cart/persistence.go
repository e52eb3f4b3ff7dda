package cart

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"beautyvault/internal/models"

	_ "github.com/lib/pq"
)

var ErrCartNotFound = errors.New("cart not found")

// Repository persists cart blobs by cart id.
type Repository interface {
	Load(cartID string) (*models.PersistedCart, error)
	Save(cart *models.PersistedCart) error
	Delete(cartID string) error
}

// SQLRepository stores each cart as a single JSON payload row. It speaks raw
// database/sql so cart persistence does not depend on the ORM layer.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// OpenSQLRepository connects to Postgres and returns a ready repository.
func OpenSQLRepository(databaseURL string) (*SQLRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cart database: %w", err)
	}
	return &SQLRepository{db: db}, nil
}

func (r *SQLRepository) Load(cartID string) (*models.PersistedCart, error) {
	var payload []byte
	err := r.db.QueryRow(`SELECT payload FROM carts WHERE id = $1`, cartID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart models.PersistedCart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart payload: %w", err)
	}
	if cart.CartID == "" {
		cart.CartID = cartID
	}
	return &cart, nil
}

func (r *SQLRepository) Save(cart *models.PersistedCart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart payload: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO carts (id, payload, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		cart.CartID, payload)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *SQLRepository) Delete(cartID string) error {
	if _, err := r.db.Exec(`DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// MemoryRepository keeps carts in process. Used by tests.
type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(cartID string) (*models.PersistedCart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	var cart models.PersistedCart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *MemoryRepository) Save(cart *models.PersistedCart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.CartID] = payload
	return nil
}

func (r *MemoryRepository) Delete(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cartID)
	return nil
}

// SeedRaw stores an arbitrary payload, bypassing the model. Tests use it to
// plant legacy blobs.
func (r *MemoryRepository) SeedRaw(cartID string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cartID] = payload
}
