package partner

import (
	"testing"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer(uuid.New(), "Alice Smith", "alice@example.com", "+1 555-0100")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	c := newTestCustomer(t)

	assert.Equal(t, "Alice Smith", c.Name)
	assert.Equal(t, "alice@example.com", c.Email)
	assert.True(t, c.IsActive)
	assert.False(t, c.HasAddress())
}

func TestNewCustomer_Validation(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name     string
		cname    string
		email    string
		phone    string
		wantCode string
	}{
		{"empty name", "", "a@b.com", "", "INVALID_NAME"},
		{"bad email", "Alice", "nope", "", "INVALID_EMAIL"},
		{"bad phone", "Alice", "a@b.com", "abc", "INVALID_PHONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomer(tenantID, tt.cname, tt.email, tt.phone)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestCustomer_SetAddress(t *testing.T) {
	c := newTestCustomer(t)

	addr, err := valueobject.NewAddress("123 Main St", "Springfield", "IL", "62704")
	require.NoError(t, err)

	c.SetAddress(addr)
	assert.True(t, c.HasAddress())

	stored, err := c.Address()
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", stored.Line())
	assert.Equal(t, "62704", stored.Zip())
}

func TestCustomer_Address_Missing(t *testing.T) {
	c := newTestCustomer(t)
	_, err := c.Address()
	require.Error(t, err)
}

func TestCustomer_Update(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.Update("Alice Jones", "ALICE.J@Example.com", "", "vip"))
	assert.Equal(t, "Alice Jones", c.Name)
	assert.Equal(t, "alice.j@example.com", c.Email)
	assert.Equal(t, "vip", c.Notes)

	require.Error(t, c.Update("", "a@b.com", "", ""))
}

func TestCustomer_Deactivate(t *testing.T) {
	c := newTestCustomer(t)

	c.Deactivate()
	assert.False(t, c.IsActive)

	c.Activate()
	assert.True(t, c.IsActive)
}
