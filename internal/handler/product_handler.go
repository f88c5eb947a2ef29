package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// maxImageSize bounds product image uploads to 5 MiB.
const maxImageSize = 5 << 20

// ProductHandler handles the shop product catalog endpoints.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest is the body of POST /v1/shop/products.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Value       string  `json:"value" binding:"required"`
}

// CreateProduct handles POST /v1/shop/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "name and value are required")
		return
	}

	product, err := h.products.Create(middleware.GetShopID(c), req.Name, req.Description, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 201, "Product created", product)
}

// ListProducts handles GET /v1/shop/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListByShop(middleware.GetShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Products retrieved", products)
}

// GetProduct handles GET /v1/shop/products/:productId
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Param("productId"), middleware.GetShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// UploadProductImage handles PUT /v1/shop/products/:productId/image.
// The raw image bytes are the request body; Content-Type names the format.
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	contentType := c.ContentType()
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
	default:
		utils.Error(c, 400, "INVALID_IMAGE", "Unsupported image content type")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageSize+1))
	if err != nil {
		utils.Error(c, 400, "INVALID_IMAGE", "Failed to read image body")
		return
	}
	if len(body) == 0 || len(body) > maxImageSize {
		utils.Error(c, 400, "INVALID_IMAGE", "Image must be between 1 byte and 5 MiB")
		return
	}

	product, err := h.products.AttachImage(c.Request.Context(), c.Param("productId"), middleware.GetShopID(c), contentType, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Product image uploaded", product)
}
