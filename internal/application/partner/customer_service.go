package partner

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/partner"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCustomerCommand creates a new customer record
type CreateCustomerCommand struct {
	TenantID     uuid.UUID
	Name         string
	Email        string
	Phone        string
	AddressLine  string
	AddressCity  string
	AddressState string
	AddressZip   string
	Notes        string
	CreatedBy    uuid.UUID
}

// UpdateCustomerCommand updates a customer's details
type UpdateCustomerCommand struct {
	TenantID     uuid.UUID
	CustomerID   uuid.UUID
	Name         string
	Email        string
	Phone        string
	AddressLine  string
	AddressCity  string
	AddressState string
	AddressZip   string
	Notes        string
}

// CustomerResult is the application-level view of a customer
type CustomerResult struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	AddressLine  string    `json:"address_line,omitempty"`
	AddressCity  string    `json:"address_city,omitempty"`
	AddressState string    `json:"address_state,omitempty"`
	AddressZip   string    `json:"address_zip,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCustomerResult maps a customer aggregate to its result view
func ToCustomerResult(c *partner.Customer) *CustomerResult {
	return &CustomerResult{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine:  c.AddressLine,
		AddressCity:  c.AddressCity,
		AddressState: c.AddressState,
		AddressZip:   c.AddressZip,
		Notes:        c.Notes,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CustomerService handles customer record management
type CustomerService struct {
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a customer service
func NewCustomerService(customers partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

// Create adds a new customer
func (s *CustomerService) Create(ctx context.Context, cmd CreateCustomerCommand) (*CustomerResult, error) {
	exists, err := s.customers.ExistsByEmail(ctx, cmd.TenantID, cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "A customer with this email already exists")
	}

	customer, err := partner.NewCustomer(cmd.TenantID, cmd.Name, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, err
	}
	customer.Notes = cmd.Notes
	customer.SetCreatedBy(cmd.CreatedBy)

	if cmd.AddressLine != "" {
		addr, err := valueobject.NewAddress(cmd.AddressLine, cmd.AddressCity, cmd.AddressState, cmd.AddressZip)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		customer.SetAddress(addr)
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))

	return ToCustomerResult(customer), nil
}

// Update modifies a customer's details
func (s *CustomerService) Update(ctx context.Context, cmd UpdateCustomerCommand) (*CustomerResult, error) {
	customer, err := s.customers.FindByID(ctx, cmd.TenantID, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	// Changing to an email another customer already uses is rejected
	if cmd.Email != customer.Email {
		exists, err := s.customers.ExistsByEmail(ctx, cmd.TenantID, cmd.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_EMAIL", "A customer with this email already exists")
		}
	}

	if err := customer.Update(cmd.Name, cmd.Email, cmd.Phone, cmd.Notes); err != nil {
		return nil, err
	}

	if cmd.AddressLine != "" {
		addr, err := valueobject.NewAddress(cmd.AddressLine, cmd.AddressCity, cmd.AddressState, cmd.AddressZip)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		customer.SetAddress(addr)
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	return ToCustomerResult(customer), nil
}

// Get loads a single customer
func (s *CustomerService) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResult, error) {
	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResult(customer), nil
}

// List returns a filtered, paginated customer list
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[CustomerResult], error) {
	page, err := s.customers.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[CustomerResult]{}, err
	}

	items := make([]CustomerResult, 0, len(page.Items))
	for idx := range page.Items {
		items = append(items, *ToCustomerResult(&page.Items[idx]))
	}
	return shared.Paginated[CustomerResult]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Deactivate soft-deletes a customer. Their order history is retained.
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}

	customer.Deactivate()
	if err := s.customers.Save(ctx, customer); err != nil {
		return err
	}

	s.logger.Info("customer deactivated", zap.String("customer_id", customerID.String()))
	return nil
}

// Activate restores a deactivated customer
func (s *CustomerService) Activate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}

	customer.Activate()
	return s.customers.Save(ctx, customer)
}
