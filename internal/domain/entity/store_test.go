package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
)

func TestNewStore(t *testing.T) {
	now := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		key     StoreKey
		wantErr bool
	}{
		{"Valid", StoreKey{Name: "LOJA CENTRO", OwnerName: "JOAO SILVA"}, false},
		{"Trimmed", StoreKey{Name: " LOJA CENTRO  ", OwnerName: "JOAO SILVA    "}, false},
		{"Max lengths", StoreKey{Name: "ABCDEFGHIJKLMNOPQRS", OwnerName: "ABCDEFGHIJKLMN"}, false},
		{"Empty name", StoreKey{Name: "   ", OwnerName: "JOAO"}, true},
		{"Empty owner", StoreKey{Name: "LOJA", OwnerName: ""}, true},
		{"Name too long", StoreKey{Name: "ABCDEFGHIJKLMNOPQRST", OwnerName: "JOAO"}, true},
		{"Owner too long", StoreKey{Name: "LOJA", OwnerName: "ABCDEFGHIJKLMNO"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.key, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, store.Name)
			assert.Equal(t, now, store.CreatedAt)
			assert.Equal(t, now, store.UpdatedAt)
		})
	}
}

func TestStoreKeyAndTouch(t *testing.T) {
	created := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	store, err := NewStore(StoreKey{Name: "LOJA CENTRO ", OwnerName: "JOAO SILVA"}, created)
	require.NoError(t, err)

	assert.Equal(t, StoreKey{Name: "LOJA CENTRO", OwnerName: "JOAO SILVA"}, store.Key())
	assert.Equal(t, "LOJA CENTRO/JOAO SILVA", store.Key().String())

	later := created.Add(time.Hour)
	store.Touch(later)
	assert.Equal(t, later, store.UpdatedAt)
	assert.Equal(t, created, store.CreatedAt)
}
