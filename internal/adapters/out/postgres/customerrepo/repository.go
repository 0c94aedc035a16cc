package customerrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new customer with its children to the database.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err, "customer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing customer's scalar fields. Children are written
// through ApplyPhoneChanges and ApplyAddressChanges.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":   aggregate.Name(),
			"tax_id": aggregate.TaxID(),
			"email":  aggregate.Email(),
		})
	if result.Error != nil {
		return pgerr.Map(result.Error, "customer", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ApplyPhoneChanges executes a phone reconciliation plan inside the current
// transaction: deletes first, then updates, then inserts.
func (r *GormCustomerRepository) ApplyPhoneChanges(
	ctx context.Context,
	customerID kernel.UUID,
	changes customer.PhoneChanges,
) error {
	db := r.db.WithContext(ctx)

	for _, id := range changes.Delete {
		result := db.Where("id = ? AND customer_id = ?", id.Bytes(), customerID.Bytes()).
			Delete(&PhoneDTO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("phone", id.String())
		}
	}

	for _, phone := range changes.Update {
		result := db.Model(&PhoneDTO{}).
			Where("id = ? AND customer_id = ?", phone.ID().Bytes(), customerID.Bytes()).
			Update("number", phone.Number())
		if result.Error != nil {
			return pgerr.Map(result.Error, "phoneNumber", phone.Number())
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("phone", phone.ID().String())
		}
	}

	for _, phone := range changes.Insert {
		dto := phoneFromDomain(customerID, phone)
		if err := db.Create(&dto).Error; err != nil {
			return pgerr.Map(err, "phoneNumber", phone.Number())
		}
	}

	return nil
}

// ApplyAddressChanges executes an address reconciliation plan inside the
// current transaction, in the same delete/update/insert order as phones.
func (r *GormCustomerRepository) ApplyAddressChanges(
	ctx context.Context,
	customerID kernel.UUID,
	changes customer.AddressChanges,
) error {
	db := r.db.WithContext(ctx)

	for _, id := range changes.Delete {
		result := db.Where("id = ? AND customer_id = ?", id.Bytes(), customerID.Bytes()).
			Delete(&AddressDTO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("address", id.String())
		}
	}

	for _, address := range changes.Update {
		dto := addressFromDomain(customerID, address)
		result := db.Model(&AddressDTO{}).
			Where("id = ? AND customer_id = ?", dto.ID, dto.CustomerID).
			Updates(map[string]any{
				"street":       dto.Street,
				"number":       dto.Number,
				"district":     dto.District,
				"complement":   dto.Complement,
				"city":         dto.City,
				"state":        dto.State,
				"postal_code":  dto.PostalCode,
				"external_ref": dto.ExternalRef,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("address", address.ID().String())
		}
	}

	for _, address := range changes.Insert {
		dto := addressFromDomain(customerID, address)
		if err := db.Create(&dto).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a customer and its children. The foreign key from orders
// rejects the delete when the customer still owns any.
func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("customer_id = ?", id.Bytes()).Delete(&PhoneDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("customer_id = ?", id.Bytes()).Delete(&AddressDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&CustomerDTO{})
	if result.Error != nil {
		return pgerr.Map(result.Error, "customer", id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", id.String())
	}

	return nil
}

// Get retrieves a customer by ID with all phones and addresses.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	err := r.db.WithContext(ctx).
		Preload("Phones").
		Preload("Addresses").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsWithTaxID reports whether a customer other than the excluded one
// already uses the tax identifier.
func (r *GormCustomerRepository) ExistsWithTaxID(
	ctx context.Context, taxID string, exclude kernel.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("tax_id = ? AND id != ?", taxID, exclude.Bytes()).
		Count(&count).Error
	return count > 0, err
}

// ExistsWithEmail reports whether a customer other than the excluded one
// already uses the email address.
func (r *GormCustomerRepository) ExistsWithEmail(
	ctx context.Context, email string, exclude kernel.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("email = ? AND id != ?", email, exclude.Bytes()).
		Count(&count).Error
	return count > 0, err
}

// ExistsWithPhoneNumber reports whether the phone number is registered to any
// customer other than the excluded one.
func (r *GormCustomerRepository) ExistsWithPhoneNumber(
	ctx context.Context, number string, exclude kernel.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PhoneDTO{}).
		Where("number = ? AND customer_id != ?", number, exclude.Bytes()).
		Count(&count).Error
	return count > 0, err
}
