// Package http exposes the application's use cases over an echo HTTP API.
package http

import (
	"errors"
	"net/http"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCustomerHandler commands.CreateCustomerCommandHandler
	updateCustomerHandler commands.UpdateCustomerCommandHandler
	deleteCustomerHandler commands.DeleteCustomerCommandHandler

	createOrderHandler commands.CreateOrderCommandHandler
	updateOrderHandler commands.UpdateOrderCommandHandler
	deleteOrderHandler commands.DeleteOrderCommandHandler

	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler
	recalculateDeliveryHandler  commands.RecalculateDeliveryCommandHandler
	deleteDeliveryHandler       commands.DeleteDeliveryCommandHandler

	getAllCustomersHandler  queries.GetAllCustomersQueryHandler
	getAllOrdersHandler     queries.GetAllOrdersQueryHandler
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler
	getDeliveryByIDHandler  queries.GetDeliveryByIDQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createCustomerHandler commands.CreateCustomerCommandHandler,
	updateCustomerHandler commands.UpdateCustomerCommandHandler,
	deleteCustomerHandler commands.DeleteCustomerCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler,
	recalculateDeliveryHandler commands.RecalculateDeliveryCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	getAllCustomersHandler queries.GetAllCustomersQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler,
	getDeliveryByIDHandler queries.GetDeliveryByIDQueryHandler,
) *Server {
	return &Server{
		createCustomerHandler:       createCustomerHandler,
		updateCustomerHandler:       updateCustomerHandler,
		deleteCustomerHandler:       deleteCustomerHandler,
		createOrderHandler:          createOrderHandler,
		updateOrderHandler:          updateOrderHandler,
		deleteOrderHandler:          deleteOrderHandler,
		createDeliveryHandler:       createDeliveryHandler,
		changeDeliveryStatusHandler: changeDeliveryStatusHandler,
		recalculateDeliveryHandler:  recalculateDeliveryHandler,
		deleteDeliveryHandler:       deleteDeliveryHandler,
		getAllCustomersHandler:      getAllCustomersHandler,
		getAllOrdersHandler:         getAllOrdersHandler,
		getAllDeliveriesHandler:     getAllDeliveriesHandler,
		getDeliveryByIDHandler:      getDeliveryByIDHandler,
	}
}

// RegisterRoutes binds every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.GET("/customers", s.GetCustomers)
	e.POST("/customers", s.CreateCustomer)
	e.PUT("/customers/:id", s.UpdateCustomer)
	e.DELETE("/customers/:id", s.DeleteCustomer)

	e.GET("/orders", s.GetOrders)
	e.POST("/orders", s.CreateOrder)
	e.PUT("/orders/:id", s.UpdateOrder)
	e.DELETE("/orders/:id", s.DeleteOrder)

	e.GET("/deliveries", s.GetDeliveries)
	e.POST("/deliveries", s.CreateDelivery)
	e.GET("/deliveries/:id", s.GetDeliveryByID)
	e.PUT("/deliveries/:id", s.ChangeDeliveryStatus)
	e.PUT("/deliveries/:id/recalculate", s.RecalculateDelivery)
	e.DELETE("/deliveries/:id", s.DeleteDelivery)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetCustomers handles GET /customers - the flattened customer listing.
func (s *Server) GetCustomers(ctx echo.Context) error {
	rows, err := s.getAllCustomersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllCustomersQuery())
	if err != nil {
		return s.fail(ctx, "Failed to retrieve customers", err)
	}

	response := make([]CustomerRow, len(rows))
	for i, row := range rows {
		response[i] = customerRowFromQuery(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(ctx echo.Context) error {
	var request CreateCustomerRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	phones, err := phoneInputs(request.Phones, false)
	if err != nil {
		return s.badRequest(ctx, "Invalid phone data", err)
	}

	addresses, err := addressInputs(request.Addresses, false)
	if err != nil {
		return s.badRequest(ctx, "Invalid address data", err)
	}

	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateCustomerCommand(
		customerID, request.Name, request.TaxID, request.Email, phones, addresses)
	if err != nil {
		return s.badRequest(ctx, "Invalid customer data", err)
	}

	if err := s.createCustomerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to create customer", err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":    "Customer created",
		"customerId": customerID.String(),
	})
}

// UpdateCustomer handles PUT /customers/{id}.
func (s *Server) UpdateCustomer(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id", err)
	}

	var request UpdateCustomerRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	var phones []commands.PhoneInput
	if request.Phones != nil {
		if phones, err = phoneInputs(*request.Phones, true); err != nil {
			return s.badRequest(ctx, "Invalid phone data", err)
		}
	}

	var addresses []commands.AddressInput
	if request.Addresses != nil {
		if addresses, err = addressInputs(*request.Addresses, true); err != nil {
			return s.badRequest(ctx, "Invalid address data", err)
		}
	}

	cmd, err := commands.NewUpdateCustomerCommand(
		customerID,
		request.Name, request.TaxID, request.Email,
		phones, request.Phones != nil,
		addresses, request.Addresses != nil,
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid customer data", err)
	}

	if err := s.updateCustomerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to update customer", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Customer updated"})
}

// DeleteCustomer handles DELETE /customers/{id}.
func (s *Server) DeleteCustomer(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id", err)
	}

	cmd, err := commands.NewDeleteCustomerCommand(customerID)
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id", err)
	}

	if err := s.deleteCustomerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to delete customer", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Customer deleted"})
}

// GetOrders handles GET /orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getAllOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.fail(ctx, "Failed to retrieve orders", err)
	}

	response := make([]OrderResponse, len(orders))
	for i, row := range orders {
		response[i] = OrderResponse{
			ID:              row.ID.String(),
			CustomerID:      row.CustomerID.String(),
			Distance:        row.Distance,
			CargoWeight:     row.CargoWeight,
			RatePerDistance: row.RatePerDistance,
			RatePerWeight:   row.RatePerWeight,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id", err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID,
		request.Distance, request.CargoWeight,
		request.RatePerDistance, request.RatePerWeight,
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data", err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to create order", err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Order created",
		"orderId": orderID.String(),
	})
}

// UpdateOrder handles PUT /orders/{id}. The response distinguishes a real
// update from a submission equal to the persisted figures.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	var request UpdateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, request.Distance, request.CargoWeight)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data", err)
	}

	changed, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to update order", err)
	}

	if !changed {
		return ctx.JSON(http.StatusOK, echo.Map{"message": "Order already up to date"})
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Order updated"})
}

// DeleteOrder handles DELETE /orders/{id}. The order's delivery, when one
// exists and does not block, is removed in the same transaction.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to delete order", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Order deleted"})
}

// GetDeliveries handles GET /deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	deliveries, err := s.getAllDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllDeliveriesQuery())
	if err != nil {
		return s.fail(ctx, "Failed to retrieve deliveries", err)
	}

	response := make([]DeliveryResponse, len(deliveries))
	for i, row := range deliveries {
		response[i] = deliveryResponseFromQuery(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryByID handles GET /deliveries/{id}.
func (s *Server) GetDeliveryByID(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	query, err := queries.NewGetDeliveryByIDQuery(deliveryID)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	row, err := s.getDeliveryByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve delivery", err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromQuery(row))
}

// CreateDelivery handles POST /deliveries. The delivery is created, priced,
// and moved to in_transit in one transaction; the computed figures come back
// in the response.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	urgency, err := delivery.UrgencyFromString(request.Urgency)
	if err != nil {
		return s.badRequest(ctx, "Invalid urgency", err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(kernel.NewUUID(), orderID, urgency)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery data", err)
	}

	created, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to create delivery", err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":  "Delivery created",
		"delivery": deliveryPayload(created),
	})
}

// ChangeDeliveryStatus handles PUT /deliveries/{id}.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	var request ChangeDeliveryStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	// Reject values outside the enum before touching the aggregate.
	target, err := delivery.StatusFromString(request.Status)
	if err != nil {
		return s.badRequest(ctx, "Invalid status", err)
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(deliveryID, target)
	if err != nil {
		return s.badRequest(ctx, "Invalid status data", err)
	}

	if err := s.changeDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to change delivery status", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Delivery status changed"})
}

// RecalculateDelivery handles PUT /deliveries/{id}/recalculate. It re-runs
// the pricing engine over the owning order's current figures.
func (s *Server) RecalculateDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	cmd, err := commands.NewRecalculateDeliveryCommand(deliveryID)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	updated, err := s.recalculateDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to recalculate delivery", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"message":  "Delivery repriced",
		"delivery": deliveryPayload(updated),
	})
}

// DeleteDelivery handles DELETE /deliveries/{id}.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(deliveryID)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery id", err)
	}

	if err := s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to delete delivery", err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"message": "Delivery deleted"})
}

func (s *Server) badRequest(ctx echo.Context, message string, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Message:      message,
		ErrorMessage: err.Error(),
	})
}

// fail maps an application error to the HTTP status the operation contract
// promises.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	return ctx.JSON(statusForError(err), Error{
		Message:      message,
		ErrorMessage: err.Error(),
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsDuplicated),
		errors.Is(err, commands.ErrOrderAlreadyHasDelivery),
		errors.Is(err, commands.ErrCustomerHasOrders),
		errors.Is(err, pgerr.ErrRowIsReferenced):
		return http.StatusConflict
	case errors.Is(err, errs.ErrOperationIsForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// phoneInputs converts phone payloads; identifiers and removal markers are
// only accepted on updates.
func phoneInputs(payloads []PhonePayload, allowIDs bool) ([]commands.PhoneInput, error) {
	inputs := make([]commands.PhoneInput, 0, len(payloads))
	for _, payload := range payloads {
		input := commands.PhoneInput{
			Number: payload.Number,
			Remove: payload.Remove,
		}

		if payload.ID != nil {
			if !allowIDs {
				return nil, errs.NewValueIsInvalidError("phoneId")
			}
			id, err := kernel.UUIDFromString(*payload.ID)
			if err != nil {
				return nil, err
			}
			input.ID = &id
		}

		inputs = append(inputs, input)
	}
	return inputs, nil
}

func addressInputs(payloads []AddressPayload, allowIDs bool) ([]commands.AddressInput, error) {
	inputs := make([]commands.AddressInput, 0, len(payloads))
	for _, payload := range payloads {
		input := commands.AddressInput{
			Number:     payload.Number,
			Complement: payload.Complement,
			Remove:     payload.Remove,
		}

		if payload.ID != nil {
			if !allowIDs {
				return nil, errs.NewValueIsInvalidError("addressId")
			}
			id, err := kernel.UUIDFromString(*payload.ID)
			if err != nil {
				return nil, err
			}
			input.ID = &id
		}

		// Removal entries carry no postal code to resolve.
		if !payload.Remove {
			postalCode, err := kernel.NewPostalCode(payload.PostalCode)
			if err != nil {
				return nil, err
			}
			input.PostalCode = postalCode
		}

		inputs = append(inputs, input)
	}
	return inputs, nil
}

func deliveryPayload(aggregate *delivery.Delivery) echo.Map {
	cost := aggregate.Cost()
	return echo.Map{
		"id":           aggregate.ID().String(),
		"orderId":      aggregate.OrderID().String(),
		"urgency":      aggregate.Urgency().String(),
		"status":       aggregate.Status().String(),
		"distanceCost": cost.DistanceCost,
		"weightCost":   cost.WeightCost,
		"surcharge":    cost.Surcharge,
		"discount":     cost.Discount,
		"extraFee":     cost.ExtraFee,
		"finalCost":    cost.FinalCost,
	}
}
