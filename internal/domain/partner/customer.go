package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\s.-]{7,20}$`)
)

// Customer represents a customer aggregate root. Email is unique per
// tenant; deletion is a soft deactivation so order history survives.
type Customer struct {
	shared.TenantAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_tenant_email,priority:2"`
	Phone        string `gorm:"type:varchar(20)"`
	AddressLine  string `gorm:"type:varchar(500)"`
	AddressCity  string `gorm:"type:varchar(100)"`
	AddressState string `gorm:"type:varchar(100)"`
	AddressZip   string `gorm:"type:varchar(20)"`
	Notes        string `gorm:"type:text"`
	IsActive     bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(tenantID uuid.UUID, name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Invalid phone number")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
		Phone:               phone,
		IsActive:            true,
	}, nil
}

// Update modifies the customer's contact details
func (c *Customer) Update(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number")
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Notes = notes
	c.UpdatedAt = time.Now()

	return nil
}

// SetAddress sets the customer's default shipping address
func (c *Customer) SetAddress(addr valueobject.Address) {
	c.AddressLine = addr.Line()
	c.AddressCity = addr.City()
	c.AddressState = addr.State()
	c.AddressZip = addr.Zip()
	c.UpdatedAt = time.Now()
}

// Address returns the customer's default shipping address
func (c *Customer) Address() (valueobject.Address, error) {
	if c.AddressLine == "" {
		return valueobject.Address{}, shared.NewDomainError("NO_ADDRESS", "Customer has no address on file")
	}
	return valueobject.NewAddress(c.AddressLine, c.AddressCity, c.AddressState, c.AddressZip)
}

// HasAddress returns true when an address is on file
func (c *Customer) HasAddress() bool {
	return c.AddressLine != ""
}

// Deactivate soft-deletes the customer. Order history is retained.
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate restores a deactivated customer
func (c *Customer) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}
