package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/service"
)

// ProductHandler handles HTTP requests for products. Create and update
// accept multipart forms: scalar fields arrive as form values, the nested
// priceConfiguration and attributes as serialized JSON, the image as a file.
type ProductHandler struct {
	svc    *service.ProductService
	logger *slog.Logger
}

func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

type productPriceOptionForm struct {
	PriceType        string             `json:"priceType" validate:"required,oneof=base additional"`
	AvailableOptions map[string]float64 `json:"availableOptions" validate:"required"`
}

type productForm struct {
	Name               string `form:"name" validate:"required"`
	Description        string `form:"description" validate:"required"`
	PriceConfiguration string `form:"priceConfiguration" validate:"required"`
	Attributes         string `form:"attributes" validate:"required"`
	TenantID           string `form:"tenantId" validate:"required"`
	CategoryID         string `form:"categoryId" validate:"required"`
	IsPublish          bool   `form:"isPublish"`
}

// parseProduct runs the two-stage decode: bind and validate the flat form,
// then unmarshal the serialized nested fields and validate their shape.
func parseProduct(c *gin.Context) (entity.Product, *entity.ValidationError) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		return entity.Product{}, entity.Validationf("request form could not be parsed")
	}
	if verr := checkForm(&form); verr != nil {
		return entity.Product{}, verr
	}

	var priceForms map[string]productPriceOptionForm
	if err := json.Unmarshal([]byte(form.PriceConfiguration), &priceForms); err != nil {
		return entity.Product{}, entity.Validationf("priceConfiguration is not valid json")
	}
	for _, opt := range priceForms {
		if verr := checkForm(&opt); verr != nil {
			return entity.Product{}, verr
		}
	}

	var attributes []entity.ProductAttribute
	if err := json.Unmarshal([]byte(form.Attributes), &attributes); err != nil {
		return entity.Product{}, entity.Validationf("attributes is not valid json")
	}
	for _, attr := range attributes {
		if attr.Name == "" {
			return entity.Product{}, entity.Validationf("attribute name is required")
		}
	}

	categoryID, err := primitive.ObjectIDFromHex(form.CategoryID)
	if err != nil {
		return entity.Product{}, entity.Validationf("categoryId is not a valid id")
	}

	priceConfiguration := make(map[string]entity.ProductPriceOption, len(priceForms))
	for name, opt := range priceForms {
		priceConfiguration[name] = entity.ProductPriceOption{
			PriceType:        opt.PriceType,
			AvailableOptions: opt.AvailableOptions,
		}
	}

	return entity.Product{
		Name:               form.Name,
		Description:        form.Description,
		PriceConfiguration: priceConfiguration,
		Attributes:         attributes,
		TenantID:           form.TenantID,
		CategoryID:         categoryID,
		IsPublish:          form.IsPublish,
	}, nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	product, verr := parseProduct(c)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}
	image, verr := imageFile(c, true)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), product, image)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID.Hex()})
}

func (h *ProductHandler) Update(c *gin.Context) {
	product, verr := parseProduct(c)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}
	image, verr := imageFile(c, false)
	if verr != nil {
		respondError(c, h.logger, verr)
		return
	}

	id := c.Param("productId")
	if _, err := h.svc.Update(c.Request.Context(), id, product, image, claimsFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("productId")
	if err := h.svc.Delete(c.Request.Context(), id, claimsFrom(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ProductHandler) GetOne(c *gin.Context) {
	product, err := h.svc.GetByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	filter := entity.ProductFilter{
		TenantID:   c.Query("tenantId"),
		CategoryID: c.Query("categoryId"),
	}
	if v, ok := c.GetQuery("isPublish"); ok {
		isPublish, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, h.logger, entity.Validationf("isPublish must be a boolean"))
			return
		}
		filter.IsPublish = &isPublish
	}

	result, err := h.svc.List(c.Request.Context(), c.Query("q"), filter, paginateQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// paginateQuery reads page/limit, leaving normalization to the repository.
func paginateQuery(c *gin.Context) entity.PaginateQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(entity.DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(entity.DefaultLimit)))
	return entity.PaginateQuery{Page: page, Limit: limit}
}
