// Package supplier provides the supplier catalog.
// Suppliers are soft-deleted so historical movements keep their reference.
package supplier

import (
	"context"
	"regexp"

	"larder/internal/core/apperror"
	"larder/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	maxNameLen    = 150
	maxContactLen = 100
	maxPhoneLen   = 20
	maxAddressLen = 200
)

// Supplier represents a vendor that products are purchased from.
type Supplier struct {
	entity.Catalog

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the supplier's postal address
	Address *string `db:"address" json:"address,omitempty"`
}

// New creates a Supplier with required fields.
func New(name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if len(s.Name) > maxNameLen {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max_length", maxNameLen)
	}

	if s.ContactPerson != nil && len(*s.ContactPerson) > maxContactLen {
		return apperror.NewValidation("contact person is too long").
			WithDetail("field", "contactPerson").
			WithDetail("max_length", maxContactLen)
	}

	if s.Phone != nil && len(*s.Phone) > maxPhoneLen {
		return apperror.NewValidation("phone is too long").
			WithDetail("field", "phone").
			WithDetail("max_length", maxPhoneLen)
	}

	if s.Email != nil && *s.Email != "" && !emailRE.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if s.Address != nil && len(*s.Address) > maxAddressLen {
		return apperror.NewValidation("address is too long").
			WithDetail("field", "address").
			WithDetail("max_length", maxAddressLen)
	}

	return nil
}
