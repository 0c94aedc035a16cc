package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAllCustomersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAllCustomersQueryHandler
}

func (suite *GetAllCustomersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
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
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAllCustomersQueryHandler(db)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAllCustomersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE customers CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllCustomersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) TestHandle_CustomerWithoutChildren_ReturnsRowWithNilChildren() {
	suite.insertCustomer("Alice Lima", "11122233344", "alice@example.com")

	query := queries.NewGetAllCustomersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Alice Lima", result[0].Name)
	suite.Equal("11122233344", result[0].TaxID)
	suite.Equal("alice@example.com", result[0].Email)
	suite.Nil(result[0].PhoneID)
	suite.Nil(result[0].PhoneNumber)
	suite.Nil(result[0].AddressID)
	suite.Nil(result[0].Street)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) TestHandle_CustomerWithChildren_ReturnsFlattenedJoin() {
	customerID := suite.insertCustomer("Bruno Costa", "55566677788", "bruno@example.com")
	suite.insertPhone(customerID, "11999990000")
	suite.insertAddress(customerID, "Avenida Paulista", "1000")
	suite.insertAddress(customerID, "Rua Augusta", "200")

	query := queries.NewGetAllCustomersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	// One phone joined against two addresses expands to two rows.
	suite.Require().Len(result, 2)

	for _, row := range result {
		suite.Equal("Bruno Costa", row.Name)
		suite.Require().NotNil(row.PhoneNumber)
		suite.Equal("11999990000", *row.PhoneNumber)
		suite.Require().NotNil(row.AddressID)
	}

	// Rows are ordered by street.
	suite.Equal("Avenida Paulista", *result[0].Street)
	suite.Equal("1000", *result[0].Number)
	suite.Equal("Rua Augusta", *result[1].Street)
	suite.Equal("200", *result[1].Number)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) TestHandle_MultipleCustomers_OrderedByName() {
	suite.insertCustomer("Zelia Prado", "99988877766", "zelia@example.com")
	suite.insertCustomer("Alice Lima", "11122233344", "alice@example.com")
	suite.insertCustomer("Marcos Reis", "44455566677", "marcos@example.com")

	query := queries.NewGetAllCustomersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Alice Lima", result[0].Name)
	suite.Equal("Marcos Reis", result[1].Name)
	suite.Equal("Zelia Prado", result[2].Name)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) insertCustomer(name, taxID, email string) uuid.UUID {
	id := uuid.New()
	err := suite.db.Create(&customerrepo.CustomerDTO{
		ID:    id,
		Name:  name,
		TaxID: taxID,
		Email: email,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetAllCustomersQueryHandlerTestSuite) insertPhone(customerID uuid.UUID, number string) {
	err := suite.db.Create(&customerrepo.PhoneDTO{
		ID:         uuid.New(),
		CustomerID: customerID,
		Number:     number,
	}).Error
	suite.Require().NoError(err)
}

func (suite *GetAllCustomersQueryHandlerTestSuite) insertAddress(customerID uuid.UUID, street, number string) {
	err := suite.db.Create(&customerrepo.AddressDTO{
		ID:         uuid.New(),
		CustomerID: customerID,
		Street:     street,
		Number:     number,
		District:   "Bela Vista",
		City:       "Sao Paulo",
		State:      "SP",
		PostalCode: "01310100",
	}).Error
	suite.Require().NoError(err)
}

func TestGetAllCustomersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllCustomersQueryHandlerTestSuite))
}
