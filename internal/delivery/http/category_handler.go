package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/service"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	svc    *service.CategoryService
	logger *slog.Logger
}

func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, logger: logger}
}

type categoryPriceOptionForm struct {
	PriceType        string   `json:"priceType" validate:"required,oneof=base additional"`
	AvailableOptions []string `json:"availableOptions" validate:"required"`
}

type categoryAttributeForm struct {
	Name             string   `json:"name" validate:"required"`
	WidgetType       string   `json:"widgetType" validate:"required,oneof=switch radio"`
	DefaultValue     any      `json:"defaultValue"`
	AvailableOptions []string `json:"availableOptions"`
}

type categoryForm struct {
	Name               string                             `json:"name" validate:"required"`
	PriceConfiguration map[string]categoryPriceOptionForm `json:"priceConfiguration" validate:"required,dive"`
	Attributes         []categoryAttributeForm            `json:"attributes" validate:"required,dive"`
	HasToppings        *bool                              `json:"hasToppings"`
}

func (f *categoryForm) toEntity() entity.Category {
	priceConfiguration := make(map[string]entity.CategoryPriceOption, len(f.PriceConfiguration))
	for name, opt := range f.PriceConfiguration {
		priceConfiguration[name] = entity.CategoryPriceOption{
			PriceType:        opt.PriceType,
			AvailableOptions: opt.AvailableOptions,
		}
	}

	attributes := make([]entity.CategoryAttribute, 0, len(f.Attributes))
	for _, attr := range f.Attributes {
		attributes = append(attributes, entity.CategoryAttribute{
			Name:             attr.Name,
			WidgetType:       attr.WidgetType,
			DefaultValue:     attr.DefaultValue,
			AvailableOptions: attr.AvailableOptions,
		})
	}

	hasToppings := false
	if f.HasToppings != nil {
		hasToppings = *f.HasToppings
	}

	return entity.Category{
		Name:               f.Name,
		PriceConfiguration: priceConfiguration,
		Attributes:         attributes,
		HasToppings:        hasToppings,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, entity.Validationf("request body is not valid json"))
		return
	}
	if verr := checkForm(&form); verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), form.toEntity())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID.Hex()})
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetOne(c *gin.Context) {
	category, err := h.svc.GetByID(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, entity.Validationf("request body is not valid json"))
		return
	}
	if verr := checkForm(&form); verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	id := c.Param("categoryId")
	if _, err := h.svc.Update(c.Request.Context(), id, form.toEntity()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("categoryId")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
