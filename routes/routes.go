package routes

import (
	"github.com/gin-gonic/gin"

	"jewelry-service/controllers"
)

// Controllers collects every handler the router needs.
type Controllers struct {
	Products   *controllers.ProductController
	Metals     *controllers.MetalController
	Diamonds   *controllers.DiamondController
	Variants   *controllers.VariantController
	Carts      *controllers.CartController
	Orders     *controllers.OrderController
	Wishlists  *controllers.WishlistController
	BulkImport *controllers.BulkImportHandler
	Presign    *controllers.PresignedURLHandler
}

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, c Controllers) {
	api := r.Group("/api")

	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", c.Products.GetProducts)
		productRoutes.GET("/:sku", c.Products.GetProductBySKU)
		productRoutes.GET("/:sku/variants", c.Variants.GetProductVariants)
		productRoutes.GET("/:sku/dyo", c.Variants.GetDYOVariant)
	}

	variantRoutes := api.Group("/variants")
	{
		variantRoutes.GET("/:sku/expanded", c.Variants.GetExpandedVariants)
		variantRoutes.GET("/:sku/quote", c.Variants.GetDYOQuote)
	}

	diamondRoutes := api.Group("/diamonds")
	{
		diamondRoutes.GET("", c.Diamonds.SearchDiamonds)
		diamondRoutes.GET("/:stock_number", c.Diamonds.GetDiamondByStockNumber)
	}

	metalRoutes := api.Group("/metals")
	{
		metalRoutes.GET("", c.Metals.GetMetals)
		metalRoutes.GET("/:type", c.Metals.GetMetalByType)
	}

	cartRoutes := api.Group("/cart")
	{
		cartRoutes.GET("", c.Carts.GetCart)
		cartRoutes.POST("/items", c.Carts.AddItem)
		cartRoutes.PATCH("/items/:sku", c.Carts.UpdateItem)
		cartRoutes.DELETE("/items/:sku", c.Carts.RemoveItem)
		cartRoutes.DELETE("", c.Carts.ClearCart)
	}

	orderRoutes := api.Group("/orders")
	{
		orderRoutes.POST("/checkout", c.Orders.Checkout)
		orderRoutes.GET("", c.Orders.GetOrders)
		orderRoutes.GET("/:number", c.Orders.GetOrder)
	}

	wishlistRoutes := api.Group("/wishlist")
	{
		wishlistRoutes.GET("", c.Wishlists.GetWishlist)
		wishlistRoutes.POST("/items", c.Wishlists.AddItem)
		wishlistRoutes.DELETE("/items/:sku", c.Wishlists.RemoveItem)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/products/bulk-upload", c.BulkImport.BulkUpload)
		admin.POST("/products", c.Products.CreateProduct)
		admin.PATCH("/products/:sku", c.Products.UpdateProduct)
		admin.DELETE("/products/:sku", c.Products.DeleteProduct)
		admin.GET("/products/presign-upload", c.Presign.GetPresignUpload)

		admin.PUT("/metals", c.Metals.UpsertMetal)
		admin.DELETE("/metals/:type", c.Metals.DeleteMetal)

		admin.POST("/diamonds", c.Diamonds.CreateDiamond)
		admin.PATCH("/diamonds/:stock_number", c.Diamonds.UpdateDiamond)
		admin.DELETE("/diamonds/:stock_number", c.Diamonds.DeleteDiamond)

		admin.PATCH("/orders/:number/status", c.Orders.UpdateOrderStatus)
	}
}
