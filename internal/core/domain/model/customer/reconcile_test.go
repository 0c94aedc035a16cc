package customer_test

import (
	"testing"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerWithPhones(t *testing.T, numbers ...string) *customer.Customer {
	t.Helper()
	phones := make([]*customer.Phone, 0, len(numbers))
	for _, number := range numbers {
		phones = append(phones, mustPhone(t, number))
	}
	c, err := customer.NewCustomer(kernel.NewUUID(), "Maria Souza", "12345678901", "maria@example.com", phones, nil)
	require.NoError(t, err)
	return c
}

func phoneNumbers(c *customer.Customer) []string {
	numbers := make([]string, 0, len(c.Phones()))
	for _, phone := range c.Phones() {
		numbers = append(numbers, phone.Number())
	}
	return numbers
}

func TestReconcilePolicy(t *testing.T) {
	require.NoError(t, customer.ReconcileReplaceAll.Validate())
	require.NoError(t, customer.ReconcileExplicitRemoval.Validate())
	require.Error(t, customer.ReconcilePolicyUnknown.Validate())
	require.Error(t, customer.ReconcilePolicy(42).Validate())

	assert.Equal(t, "replace-all", customer.ReconcileReplaceAll.String())
	assert.Equal(t, "explicit-removal", customer.ReconcileExplicitRemoval.String())
	assert.Equal(t, "unknown", customer.ReconcilePolicyUnknown.String())
}

func TestCustomer_ReconcilePhones(t *testing.T) {
	t.Run("replace-all deletes unmentioned children", func(t *testing.T) {
		// Persisted {A, B}; submit {A changed, C new}: B must go away.
		c := customerWithPhones(t, "1111", "2222")
		idA := c.Phones()[0].ID()
		idB := c.Phones()[1].ID()

		changes, err := c.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
			{ID: &idA, Number: "1111-changed"},
			{Number: "3333"},
		})

		require.NoError(t, err)
		require.Len(t, changes.Insert, 1)
		require.Len(t, changes.Update, 1)
		require.Len(t, changes.Delete, 1)
		assert.True(t, changes.Delete[0].IsEqual(idB))
		assert.Equal(t, "1111-changed", changes.Update[0].Number())
		assert.Equal(t, "3333", changes.Insert[0].Number())
		assert.Equal(t, []string{"1111-changed", "3333"}, phoneNumbers(c))
	})

	t.Run("explicit-removal keeps unmentioned children", func(t *testing.T) {
		c := customerWithPhones(t, "1111", "2222")
		idA := c.Phones()[0].ID()

		changes, err := c.ReconcilePhones(customer.ReconcileExplicitRemoval, []customer.PhoneSubmission{
			{ID: &idA, Number: "1111-changed"},
			{Number: "3333"},
		})

		require.NoError(t, err)
		assert.Empty(t, changes.Delete)
		assert.Equal(t, []string{"1111-changed", "2222", "3333"}, phoneNumbers(c))
	})

	t.Run("explicit-removal honors removal markers", func(t *testing.T) {
		c := customerWithPhones(t, "1111", "2222")
		idB := c.Phones()[1].ID()

		changes, err := c.ReconcilePhones(customer.ReconcileExplicitRemoval, []customer.PhoneSubmission{
			{ID: &idB, Remove: true},
		})

		require.NoError(t, err)
		require.Len(t, changes.Delete, 1)
		assert.True(t, changes.Delete[0].IsEqual(idB))
		assert.Equal(t, []string{"1111"}, phoneNumbers(c))
	})

	t.Run("empty submission under replace-all clears the collection", func(t *testing.T) {
		c := customerWithPhones(t, "1111", "2222")

		changes, err := c.ReconcilePhones(customer.ReconcileReplaceAll, nil)

		require.NoError(t, err)
		assert.Len(t, changes.Delete, 2)
		assert.Empty(t, c.Phones())
	})

	t.Run("empty submission under explicit-removal is a no-op", func(t *testing.T) {
		c := customerWithPhones(t, "1111", "2222")

		changes, err := c.ReconcilePhones(customer.ReconcileExplicitRemoval, nil)

		require.NoError(t, err)
		assert.True(t, changes.IsEmpty())
		assert.Equal(t, []string{"1111", "2222"}, phoneNumbers(c))
	})

	t.Run("unknown identifier fails the whole reconciliation", func(t *testing.T) {
		c := customerWithPhones(t, "1111")
		stranger := kernel.NewUUID()

		_, err := c.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
			{ID: &stranger, Number: "9999"},
		})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, []string{"1111"}, phoneNumbers(c))
	})

	t.Run("removal marker without identifier is rejected", func(t *testing.T) {
		c := customerWithPhones(t, "1111")

		_, err := c.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
			{Remove: true},
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("duplicate identifier is rejected", func(t *testing.T) {
		c := customerWithPhones(t, "1111")
		idA := c.Phones()[0].ID()

		_, err := c.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
			{ID: &idA, Number: "1111-a"},
			{ID: &idA, Number: "1111-b"},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid new child fails the whole reconciliation", func(t *testing.T) {
		c := customerWithPhones(t, "1111")

		_, err := c.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
			{Number: ""},
		})

		require.Error(t, err)
		assert.Equal(t, []string{"1111"}, phoneNumbers(c))
	})

	t.Run("unknown policy is rejected", func(t *testing.T) {
		c := customerWithPhones(t, "1111")

		_, err := c.ReconcilePhones(customer.ReconcilePolicyUnknown, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCustomer_ReconcileAddresses(t *testing.T) {
	newSubmission := func(t *testing.T, street string) customer.AddressSubmission {
		return customer.AddressSubmission{
			Street:     street,
			Number:     "42",
			District:   "Centro",
			City:       "Sao Paulo",
			State:      "SP",
			PostalCode: mustPostalCode(t, "01310100"),
		}
	}

	t.Run("replace-all deletes unmentioned children", func(t *testing.T) {
		addresses := []*customer.Address{mustAddress(t, "Rua A"), mustAddress(t, "Rua B")}
		c, err := customer.NewCustomer(kernel.NewUUID(), "Maria Souza", "12345678901", "maria@example.com", nil, addresses)
		require.NoError(t, err)
		idA := c.Addresses()[0].ID()
		idB := c.Addresses()[1].ID()

		updated := newSubmission(t, "Rua A Nova")
		updated.ID = &idA

		changes, err := c.ReconcileAddresses(customer.ReconcileReplaceAll, []customer.AddressSubmission{
			updated,
			newSubmission(t, "Rua C"),
		})

		require.NoError(t, err)
		require.Len(t, changes.Delete, 1)
		assert.True(t, changes.Delete[0].IsEqual(idB))
		require.Len(t, c.Addresses(), 2)
		assert.Equal(t, "Rua A Nova", c.Addresses()[0].Street())
		assert.Equal(t, "Rua C", c.Addresses()[1].Street())
	})

	t.Run("update overwrites all fields", func(t *testing.T) {
		addresses := []*customer.Address{mustAddress(t, "Rua A")}
		c, err := customer.NewCustomer(kernel.NewUUID(), "Maria Souza", "12345678901", "maria@example.com", nil, addresses)
		require.NoError(t, err)
		idA := c.Addresses()[0].ID()

		updated := customer.AddressSubmission{
			ID:          &idA,
			Street:      "Rua Augusta",
			Number:      "900",
			District:    "Consolacao",
			Complement:  "Apto 12",
			City:        "Sao Paulo",
			State:       "SP",
			PostalCode:  mustPostalCode(t, "01305000"),
			ExternalRef: "3550308",
		}

		changes, err := c.ReconcileAddresses(customer.ReconcileReplaceAll, []customer.AddressSubmission{updated})

		require.NoError(t, err)
		require.Len(t, changes.Update, 1)
		got := c.Addresses()[0]
		assert.Equal(t, "Rua Augusta", got.Street())
		assert.Equal(t, "Apto 12", got.Complement())
		assert.Equal(t, "01305000", got.PostalCode().String())
		assert.Equal(t, "3550308", got.ExternalRef())
	})

	t.Run("unknown identifier fails", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Maria Souza", "12345678901", "maria@example.com", nil, nil)
		require.NoError(t, err)
		stranger := kernel.NewUUID()

		removal := customer.AddressSubmission{ID: &stranger, Remove: true}
		_, err = c.ReconcileAddresses(customer.ReconcileExplicitRemoval, []customer.AddressSubmission{removal})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
