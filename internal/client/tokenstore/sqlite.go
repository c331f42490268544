package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/testematch/cli/internal/common"
	"github.com/testematch/cli/internal/cryptox"
)

const (
	secretSaltLen = 16
	secretLen     = 32
)

// SQLiteStore keeps the token record in the local client database, sealed
// with AES-GCM under a key derived from a per-install device secret. The
// secret file is created with 0600 on first use; losing it simply means the
// user logs in again.
type SQLiteStore struct {
	db  *sql.DB
	key []byte

	// now is a test seam for expiry checks.
	now func() time.Time
}

// NewSQLiteStore builds a store over db, loading (or creating) the device
// secret at secretPath.
func NewSQLiteStore(db *sql.DB, secretPath string) (*SQLiteStore, error) {
	key, err := loadOrCreateKey(secretPath)
	if err != nil {
		return nil, fmt.Errorf("device secret: %w", err)
	}
	return &SQLiteStore{db: db, key: key, now: time.Now}, nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data = append(common.GenerateRandByteArray(secretSaltLen), common.GenerateRandByteArray(secretLen)...)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if len(data) != secretSaltLen+secretLen {
		return nil, fmt.Errorf("corrupt secret file %s", path)
	}

	salt, secret := data[:secretSaltLen], data[secretSaltLen:]
	return cryptox.DeriveKey(secret, salt), nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	var value, nonce []byte
	var expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT value, nonce, expires_at FROM records WHERE key = ?`,
		common.TokenRecordKey).Scan(&value, &nonce, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading token record: %w", err)
	}

	if !s.now().Before(time.Unix(expiresAt, 0)) {
		// Expired records read as absent and are cleaned up eagerly.
		_ = s.Delete(ctx)
		return "", nil
	}

	plaintext, err := cryptox.Open(value, nonce, s.key)
	if err != nil {
		// Undecryptable record (secret rotated, file copied between
		// installs): treat as absent rather than failing startup.
		_ = s.Delete(ctx)
		return "", nil
	}
	return string(plaintext), nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	value, nonce, err := cryptox.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("sealing token record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, nonce, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, nonce = excluded.nonce, expires_at = excluded.expires_at
	`, common.TokenRecordKey, value, nonce, expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("saving token record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, common.TokenRecordKey)
	if err != nil {
		return fmt.Errorf("deleting token record: %w", err)
	}
	return nil
}
