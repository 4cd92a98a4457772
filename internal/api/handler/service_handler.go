package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/ports"
)

// ServiceHandler serves the catalog. Reads are public; writes are gated
// to admins by the router.
type ServiceHandler struct {
	services ports.ServiceManager
}

func NewServiceHandler(services ports.ServiceManager) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// List
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200  {object}  servicesResponse
// @Router       /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.services.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, servicesResponse{Services: services})
}

// Get
//
// @Summary      Get a service
// @Tags         services
// @Produce      json
// @Param        serviceId  path      int  true  "Service ID"
// @Success      200        {object}  serviceResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	service, err := h.services.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Service: service})
}

// Reviews lists the reviews of a service with their authors.
//
// @Summary      List reviews of a service
// @Tags         services
// @Produce      json
// @Param        serviceId  path      int  true  "Service ID"
// @Success      200        {object}  reviewsResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId}/reviews [get]
func (h *ServiceHandler) Reviews(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	reviews, err := h.services.Reviews(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewsResponse{Reviews: reviews})
}

// Create
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceAddRequest  true  "New service"
// @Success      201   {object}  serviceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	service, err := h.services.Create(c.Request().Context(), ports.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serviceResponse{Service: service})
}

// Update
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path      int                   true  "Service ID"
// @Param        body       body      serviceUpdateRequest  true  "Fields to change"
// @Success      200        {object}  serviceResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId} [patch]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	var req serviceUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	service, err := h.services.Update(c.Request().Context(), id, ports.ServiceUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Service: service})
}

// Activate
//
// @Summary      Activate a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path      int  true  "Service ID"
// @Success      200        {object}  serviceResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId}/activate [patch]
func (h *ServiceHandler) Activate(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	service, err := h.services.Activate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Service: service})
}

// Deactivate
//
// @Summary      Deactivate a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path      int  true  "Service ID"
// @Success      200        {object}  serviceResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId}/deactivate [patch]
func (h *ServiceHandler) Deactivate(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	service, err := h.services.Deactivate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Service: service})
}

// Delete
//
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId  path      int  true  "Service ID"
// @Success      200        {object}  deletedResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /services/{serviceId} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "serviceId")
	if err != nil {
		return err
	}
	if err := h.services.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: strconv.FormatInt(id, 10)})
}
