package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDeliveryStatusSummaryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetDeliveryStatusSummaryQueryHandler
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{},
		&deliveryrepo.DeliveryDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetDeliveryStatusSummaryQueryHandler(db)
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, orders, customers CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetDeliveryStatusSummaryQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) TestHandle_CountsPerStatus() {
	suite.insertDelivery(delivery.StatusInTransit)
	suite.insertDelivery(delivery.StatusInTransit)
	suite.insertDelivery(delivery.StatusDelivered)

	query := queries.NewGetDeliveryStatusSummaryQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	// Grouped rows come back in status enum order.
	suite.Equal("in-transit", result[0].Status)
	suite.Equal(int64(2), result[0].Count)
	suite.Equal("delivered", result[1].Status)
	suite.Equal(int64(1), result[1].Count)
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) TestHandle_AbsentStatusesAreOmitted() {
	suite.insertDelivery(delivery.StatusCancelled)

	query := queries.NewGetDeliveryStatusSummaryQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("cancelled", result[0].Status)
	suite.Equal(int64(1), result[0].Count)
}

func (suite *GetDeliveryStatusSummaryQueryHandlerTestSuite) insertDelivery(status delivery.Status) {
	customerID := uuid.New()
	err := suite.db.Create(&customerrepo.CustomerDTO{
		ID:    customerID,
		Name:  "Test Customer",
		TaxID: uuid.NewString()[:11],
		Email: uuid.NewString() + "@example.com",
	}).Error
	suite.Require().NoError(err)

	orderID := uuid.New()
	err = suite.db.Create(&orderrepo.OrderDTO{
		ID:              orderID,
		CustomerID:      customerID,
		Distance:        decimal.NewFromInt(10),
		CargoWeight:     decimal.NewFromInt(60),
		RatePerDistance: decimal.NewFromInt(2),
		RatePerWeight:   decimal.NewFromInt(1),
	}).Error
	suite.Require().NoError(err)

	err = suite.db.Create(&deliveryrepo.DeliveryDTO{
		ID:           uuid.New(),
		OrderID:      orderID,
		Urgency:      int(delivery.UrgencyNormal),
		Status:       int(status),
		DistanceCost: decimal.NewFromInt(20),
		WeightCost:   decimal.NewFromInt(60),
		Surcharge:    decimal.Zero,
		Discount:     decimal.Zero,
		ExtraFee:     decimal.NewFromInt(15),
		FinalCost:    decimal.NewFromInt(95),
	}).Error
	suite.Require().NoError(err)
}

func TestGetDeliveryStatusSummaryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveryStatusSummaryQueryHandlerTestSuite))
}
