package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/api/metrics"
	"github.com/deadeye/laserworks/internal/core/ports"
)

// UserServiceHandler serves orders. The :username segment on the
// admin-only routes addresses nothing; orders are keyed by id.
type UserServiceHandler struct {
	orders ports.UserServiceManager
}

func NewUserServiceHandler(orders ports.UserServiceManager) *UserServiceHandler {
	return &UserServiceHandler{orders: orders}
}

// ListAll returns every order joined with its user and service.
//
// @Summary      List all orders
// @Tags         user-services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userServicesResponse
// @Failure      401  {object}  errorResponse
// @Router       /user-services [get]
func (h *UserServiceHandler) ListAll(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userServicesResponse{UserServices: orders})
}

// ListForUser
//
// @Summary      List a user's orders
// @Tags         user-services
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userServicesResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /user-services/{username} [get]
func (h *UserServiceHandler) ListForUser(c echo.Context) error {
	orders, err := h.orders.ListForUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userServicesResponse{UserServices: orders})
}

// Add places an order for the user in the path.
//
// @Summary      Place an order
// @Tags         user-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                 true  "Username"
// @Param        body      body      userServiceAddRequest  true  "Order"
// @Success      201       {object}  userServiceResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /user-services/{username} [post]
func (h *UserServiceHandler) Add(c echo.Context) error {
	var req userServiceAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.AddToUser(c.Request().Context(), c.Param("username"), ports.AddUserServiceInput{
		ServiceID:      req.ServiceID,
		ConfirmedPrice: req.ConfirmedPrice,
		AdditionInfo:   req.AdditionInfo,
	})
	if err != nil {
		return err
	}
	metrics.OrdersTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, userServiceResponse{UserService: order})
}

// Complete
//
// @Summary      Mark an order fulfilled
// @Tags         user-services
// @Produce      json
// @Security     BearerAuth
// @Param        username       path      string  true  "Username"
// @Param        userServiceId  path      int     true  "Order ID"
// @Success      200            {object}  userServiceResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /user-services/{username}/complete/{userServiceId} [patch]
func (h *UserServiceHandler) Complete(c echo.Context) error {
	id, err := paramID(c, "userServiceId")
	if err != nil {
		return err
	}
	order, err := h.orders.Complete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	metrics.OrdersTotal.WithLabelValues("completed").Inc()
	return c.JSON(http.StatusOK, userServiceResponse{UserService: order})
}

// ChangePrice
//
// @Summary      Change the confirmed price of an order
// @Tags         user-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username       path      string        true  "Username"
// @Param        userServiceId  path      int           true  "Order ID"
// @Param        body           body      priceRequest  true  "New price"
// @Success      200            {object}  userServiceResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /user-services/{username}/price/{userServiceId} [patch]
func (h *UserServiceHandler) ChangePrice(c echo.Context) error {
	id, err := paramID(c, "userServiceId")
	if err != nil {
		return err
	}
	var req priceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.ChangePrice(c.Request().Context(), id, req.Price)
	if err != nil {
		return err
	}
	metrics.OrdersTotal.WithLabelValues("repriced").Inc()
	return c.JSON(http.StatusOK, userServiceResponse{UserService: order})
}

// Delete
//
// @Summary      Delete an order
// @Tags         user-services
// @Produce      json
// @Security     BearerAuth
// @Param        username       path      string  true  "Username"
// @Param        userServiceId  path      int     true  "Order ID"
// @Success      200            {object}  deletedResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /user-services/{username}/{userServiceId} [delete]
func (h *UserServiceHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "userServiceId")
	if err != nil {
		return err
	}
	if err := h.orders.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.OrdersTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, deletedResponse{Deleted: strconv.FormatInt(id, 10)})
}
