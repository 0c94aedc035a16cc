package queries

import (
	"context"
	"database/sql"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCustomersQueryHandler retrieves the flattened customer join from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetAllCustomersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCustomersQueryHandler creates a handler for customer retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetAllCustomersQueryHandler(db *gorm.DB) GetAllCustomersQueryHandler {
	return GetAllCustomersQueryHandler{db: db}
}

// Handle executes the query to retrieve all customers with their children.
// Returns one row per customer/phone/address combination, sorted by customer
// name for consistent output.
func (h GetAllCustomersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCustomersQuery,
) ([]GetAllCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers := make([]GetAllCustomersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.tax_id,
			c.email,
			p.id,
			p.number,
			a.id,
			a.street,
			a.number,
			a.district,
			a.complement,
			a.city,
			a.state,
			a.postal_code,
			a.external_ref
		FROM customers c
		LEFT JOIN phones p ON p.customer_id = c.id
		LEFT JOIN addresses a ON a.customer_id = c.id
		ORDER BY c.name, p.number, a.street
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetAllCustomersQueryResponse
		var id uuid.UUID
		var phoneID, addressID uuid.NullUUID
		var phoneNumber sql.NullString
		var street, number, district, complement sql.NullString
		var city, state, postalCode, externalRef sql.NullString

		err = rows.Scan(
			&id,
			&row.Name,
			&row.TaxID,
			&row.Email,
			&phoneID,
			&phoneNumber,
			&addressID,
			&street,
			&number,
			&district,
			&complement,
			&city,
			&state,
			&postalCode,
			&externalRef,
		)
		if err != nil {
			return nil, err
		}

		customerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.CustomerID = customerID

		if phoneID.Valid {
			converted, convErr := kernel.UUIDFromBytes(phoneID.UUID[:])
			if convErr != nil {
				return nil, convErr
			}
			row.PhoneID = &converted
			row.PhoneNumber = nullable(phoneNumber)
		}

		if addressID.Valid {
			converted, convErr := kernel.UUIDFromBytes(addressID.UUID[:])
			if convErr != nil {
				return nil, convErr
			}
			row.AddressID = &converted
			row.Street = nullable(street)
			row.Number = nullable(number)
			row.District = nullable(district)
			row.Complement = nullable(complement)
			row.City = nullable(city)
			row.State = nullable(state)
			row.PostalCode = nullable(postalCode)
			row.ExternalRef = nullable(externalRef)
		}

		customers = append(customers, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func nullable(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
