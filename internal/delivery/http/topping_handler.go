package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/service"
)

// ToppingHandler handles HTTP requests for toppings.
type ToppingHandler struct {
	svc    *service.ToppingService
	logger *slog.Logger
}

func NewToppingHandler(svc *service.ToppingService, logger *slog.Logger) *ToppingHandler {
	return &ToppingHandler{svc: svc, logger: logger}
}

type toppingForm struct {
	Name     string   `form:"name" validate:"required"`
	Price    *float64 `form:"price" validate:"required"`
	TenantID string   `form:"tenantId" validate:"required"`
}

func parseTopping(c *gin.Context) (entity.Topping, *entity.ValidationError) {
	var form toppingForm
	if err := c.ShouldBind(&form); err != nil {
		return entity.Topping{}, entity.Validationf("request form could not be parsed")
	}
	if verr := checkForm(&form); verr != nil {
		return entity.Topping{}, verr
	}

	return entity.Topping{
		Name:     form.Name,
		Price:    *form.Price,
		TenantID: form.TenantID,
	}, nil
}

func (h *ToppingHandler) Create(c *gin.Context) {
	topping, verr := parseTopping(c)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}
	image, verr := imageFile(c, true)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), topping, image)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID.Hex()})
}

func (h *ToppingHandler) Update(c *gin.Context) {
	topping, verr := parseTopping(c)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}
	image, verr := imageFile(c, false)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	id := c.Param("toppingId")
	if _, err := h.svc.Update(c.Request.Context(), id, topping, image, claimsFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ToppingHandler) Delete(c *gin.Context) {
	id := c.Param("toppingId")
	if err := h.svc.Delete(c.Request.Context(), id, claimsFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ToppingHandler) GetOne(c *gin.Context) {
	topping, err := h.svc.GetByID(c.Request.Context(), c.Param("toppingId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, topping)
}

func (h *ToppingHandler) GetAll(c *gin.Context) {
	filter := entity.ToppingFilter{TenantID: c.Query("tenantId")}

	result, err := h.svc.List(c.Request.Context(), filter, paginateQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
