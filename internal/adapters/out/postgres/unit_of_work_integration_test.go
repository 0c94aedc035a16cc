package postgres_test

import (
	"context"
	"fmt"
	"testing"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection,
// then runs migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&customerrepo.PhoneDTO{},
		&customerrepo.AddressDTO{},
		&orderrepo.OrderDTO{},
		&deliveryrepo.DeliveryDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures a clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, orders, phones, addresses, customers CASCADE").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances, each providing all three repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.CustomerRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow2.CustomerRepository())
	suite.NotNil(uow2.OrderRepository())
	suite.NotNil(uow2.DeliveryRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for commit and
// rollback without an active transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies a customer with children
// survives a commit and round-trips intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("11144477735", "ana@example.com", "+5511999990001")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)

	retrieved, err := uow.CustomerRepository().Get(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Equal(testCustomer.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.CustomerRepository().Get(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Equal(testCustomer.Name(), retrieved.Name())
	suite.Require().Len(retrieved.Phones(), 1)
	suite.Equal("+5511999990001", retrieved.Phones()[0].Number())
	suite.Require().Len(retrieved.Addresses(), 1)
	suite.Equal("Avenida Paulista", retrieved.Addresses()[0].Street())
}

// TestUnitOfWork_MultiRepositoryTransaction verifies customer, order, and
// priced delivery persist atomically within one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("52998224725", "bruno@example.com", "+5511999990002")
	testOrder := suite.createTestOrder(testCustomer.ID())
	testDelivery := suite.createTestDelivery(testOrder, delivery.UrgencyUrgent)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testCustomer.ID(), retrievedOrder.CustomerID())

	retrievedDelivery, err := newUow.DeliveryRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrievedDelivery.ID())
	suite.Equal(delivery.StatusInTransit, retrievedDelivery.Status())
	suite.True(testDelivery.Cost().FinalCost.Equal(retrievedDelivery.Cost().FinalCost),
		"Final cost should survive the round trip")
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// across the customer, order, and delivery repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("15350946056", "carla@example.com", "+5511999990003")
	testOrder := suite.createTestOrder(testCustomer.ID())
	testDelivery := suite.createTestDelivery(testOrder, delivery.UrgencyNormal)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	_, err = uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err, "Delivery should be visible within the transaction")

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.CustomerRepository().Get(ctx, testCustomer.ID())
	suite.Require().Error(err, "Customer should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().Error(err, "Delivery should not exist after rollback")
}

// TestUnitOfWork_PartialFailureScenario verifies a failed statement mid
// transaction leaves nothing observable after rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PartialFailureScenario() {
	ctx := context.Background()
	uow := suite.factory.Create()

	existingCustomer := suite.createTestCustomer("93541134780", "davi@example.com", "+5511999990004")
	err := uow.CustomerRepository().Add(ctx, existingCustomer)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	newCustomer := suite.createTestCustomer("87748248800", "elisa@example.com", "+5511999990005")
	err = uow.CustomerRepository().Add(ctx, newCustomer)
	suite.Require().NoError(err)

	newOrder := suite.createTestOrder(newCustomer.ID())
	err = uow.OrderRepository().Add(ctx, newOrder)
	suite.Require().NoError(err)

	// Same phone number as the pre-existing customer.
	conflicting := suite.createTestCustomer("29537995593", "fabio@example.com", "+5511999990004")
	err = uow.CustomerRepository().Add(ctx, conflicting)
	suite.Require().Error(err, "Adding a customer with a taken phone number should fail")
	suite.Require().ErrorIs(err, errs.ErrValueIsDuplicated)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.CustomerRepository().Get(ctx, existingCustomer.ID())
	suite.Require().NoError(err, "Pre-existing customer should still exist")

	_, err = newUow.CustomerRepository().Get(ctx, newCustomer.ID())
	suite.Require().Error(err, "New customer should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, newOrder.ID())
	suite.Require().Error(err, "New order should not exist after rollback")
}

// TestUnitOfWork_OneDeliveryPerOrder verifies the unique index on
// deliveries.order_id rejects a second delivery for the same order.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OneDeliveryPerOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("30556381056", "gui@example.com", "+5511999990006")
	testOrder := suite.createTestOrder(testCustomer.ID())
	first := suite.createTestDelivery(testOrder, delivery.UrgencyNormal)
	second := suite.createTestDelivery(testOrder, delivery.UrgencyUrgent)

	err := uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, first)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsDuplicated)
}

// TestUnitOfWork_ForeignKeysRestrictDeletes verifies referenced rows cannot
// be deleted while the referencing rows exist.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ForeignKeysRestrictDeletes() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("76296602040", "hugo@example.com", "+5511999990007")
	testOrder := suite.createTestOrder(testCustomer.ID())
	testDelivery := suite.createTestDelivery(testOrder, delivery.UrgencyNormal)

	err := uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Delete(ctx, testOrder.ID())
	suite.Require().Error(err, "Order delete should be rejected while its delivery exists")
	suite.Require().ErrorIs(err, pgerr.ErrRowIsReferenced)

	err = uow.DeliveryRepository().Delete(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	err = uow.OrderRepository().Delete(ctx, testOrder.ID())
	suite.Require().NoError(err, "Order delete should succeed once the delivery is gone")
}

// TestUnitOfWork_PhoneReconciliationPersistence verifies ApplyPhoneChanges
// writes deletions, updates, and insertions produced by reconciliation.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PhoneReconciliationPersistence() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("35830136000", "iris@example.com", "+5511999990008")
	err := uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)

	changes, err := testCustomer.ReconcilePhones(customer.ReconcileReplaceAll, []customer.PhoneSubmission{
		{Number: "+5511999990009"},
	})
	suite.Require().NoError(err)
	suite.Require().Len(changes.Delete, 1)
	suite.Require().Len(changes.Insert, 1)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.CustomerRepository().ApplyPhoneChanges(ctx, testCustomer.ID(), changes)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().CustomerRepository().Get(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Phones(), 1)
	suite.Equal("+5511999990009", retrieved.Phones()[0].Number())
}

// TestUnitOfWork_RepositoryIsolation verifies concurrent unit of work
// instances only observe their own uncommitted changes.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	customer1 := suite.createTestCustomer("05757517060", "joao@example.com", "+5511999990010")
	customer2 := suite.createTestCustomer("65824247030", "kaua@example.com", "+5511999990011")

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.CustomerRepository().Add(ctx, customer1)
	suite.Require().NoError(err)
	err = uow2.CustomerRepository().Add(ctx, customer2)
	suite.Require().NoError(err)

	_, err = uow1.CustomerRepository().Get(ctx, customer1.ID())
	suite.Require().NoError(err, "UOW1 should see customer1")
	_, err = uow1.CustomerRepository().Get(ctx, customer2.ID())
	suite.Require().Error(err, "UOW1 should not see customer2")

	_, err = uow2.CustomerRepository().Get(ctx, customer2.ID())
	suite.Require().NoError(err, "UOW2 should see customer2")
	_, err = uow2.CustomerRepository().Get(ctx, customer1.ID())
	suite.Require().Error(err, "UOW2 should not see customer1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.CustomerRepository().Get(ctx, customer1.ID())
	suite.Require().NoError(err, "Customer1 should persist after commit")
	_, err = newUow.CustomerRepository().Get(ctx, customer2.ID())
	suite.Require().Error(err, "Customer2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies repositories work for immediate
// operations without explicit transaction boundaries.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("47550381500", "livia@example.com", "+5511999990012")

	err := uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.CustomerRepository().Get(ctx, testCustomer.ID())
	suite.Require().NoError(err)
	suite.Equal(testCustomer.ID(), retrieved.ID())
}

// TestUnitOfWork_DeliveryStatusRoundTrip verifies status and repricing
// updates survive persistence.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveryStatusRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCustomer := suite.createTestCustomer("11436205000", "mia@example.com", "+5511999990013")
	testOrder := suite.createTestOrder(testCustomer.ID())
	testDelivery := suite.createTestDelivery(testOrder, delivery.UrgencyNormal)

	err := uow.CustomerRepository().Add(ctx, testCustomer)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = testDelivery.ChangeStatus(delivery.StatusDelivered)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusDelivered, retrieved.Status())
	suite.Equal(delivery.UrgencyNormal, retrieved.Urgency())
}

// createTestCustomer builds a valid customer with one phone and one address.
func (suite *UnitOfWorkIntegrationTestSuite) createTestCustomer(
	taxID, email, phoneNumber string,
) *customer.Customer {
	phone, err := customer.NewPhone(kernel.NewUUID(), phoneNumber)
	suite.Require().NoError(err)

	postalCode, err := kernel.NewPostalCode("01310-100")
	suite.Require().NoError(err)

	address, err := customer.NewAddress(
		kernel.NewUUID(),
		"Avenida Paulista", "1000", "Bela Vista", "", "Sao Paulo", "SP",
		postalCode, "3550308",
	)
	suite.Require().NoError(err)

	testCustomer, err := customer.NewCustomer(
		kernel.NewUUID(),
		fmt.Sprintf("Customer %s", phoneNumber), taxID, email,
		[]*customer.Phone{phone},
		[]*customer.Address{address},
	)
	suite.Require().NoError(err)
	return testCustomer
}

// createTestOrder builds a valid order owned by the given customer.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(customerID kernel.UUID) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		decimal.NewFromInt(10), decimal.NewFromInt(60),
		decimal.NewFromInt(2), decimal.NewFromInt(1),
	)
	suite.Require().NoError(err)
	return testOrder
}

// createTestDelivery builds a priced delivery for the given order.
func (suite *UnitOfWorkIntegrationTestSuite) createTestDelivery(
	testOrder *order.Order, urgency delivery.Urgency,
) *delivery.Delivery {
	testDelivery, err := delivery.NewDelivery(kernel.NewUUID(), testOrder.ID(), urgency)
	suite.Require().NoError(err)

	cost, err := services.NewPricingEngine().Price(testOrder, urgency)
	suite.Require().NoError(err)

	err = testDelivery.ApplyPricing(cost)
	suite.Require().NoError(err)
	return testDelivery
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
