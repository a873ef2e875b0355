package routes

import (
	"net/http"

	"velora/address"
	"velora/auth"
	"velora/cart"
	"velora/checkout"
	"velora/live"
	"velora/middleware"
	"velora/orders"
	"velora/products"
	"velora/ratelim"
	"velora/reviews"
	"velora/settings"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.RegisterHandler))
	router.POST("/api/auth/login", rl.Limit(auth.LoginHandler))
	router.POST("/api/auth/logout", middleware.OptionalAuth(auth.LogoutHandler))
	router.POST("/api/auth/refresh", rl.Limit(auth.RefreshHandler))
	router.GET("/api/csrf", utils.CSRF)
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/cart/:productId", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/:productId", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
	router.POST("/api/coupons/validate", middleware.Authenticate(cart.ValidateCouponHandler))
}

func AddAddressRoutes(router *httprouter.Router) {
	router.GET("/api/addresses", middleware.Authenticate(address.GetAddresses))
	router.POST("/api/addresses", middleware.Authenticate(address.CreateAddress))
	router.PUT("/api/addresses/:id", middleware.Authenticate(address.UpdateAddress))
	router.PATCH("/api/addresses/:id/default", middleware.Authenticate(address.SetDefaultAddress))
	router.DELETE("/api/addresses/:id", middleware.Authenticate(address.DeleteAddress))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	handler := checkout.NewHandler(checkout.NewService())

	router.POST("/api/checkout/session", middleware.Authenticate(handler.CreateCheckoutSession))
	router.POST("/api/payment/gateway/order", middleware.Authenticate(handler.CreateGatewayOrder))
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(checkout.Idempotent(handler.PlaceOrder))))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/:orderNumber", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/:orderNumber/invoice", middleware.Authenticate(orders.PrintInvoice))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:id", products.GetProduct)
	router.GET("/api/products/:id/reviews", reviews.GetProductReviews)
	router.POST("/api/products/:id/reviews", middleware.Authenticate(reviews.CreateReview))
	router.DELETE("/api/products/:id/reviews/:reviewId", middleware.Authenticate(reviews.DeleteReview))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings/store", settings.GetStoreSettingsHandler)
}

func AddAdminRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/admin/orders", middleware.RequireAdmin(orders.GetAllOrders))
	router.PATCH("/api/admin/orders/:orderNumber/status", middleware.RequireAdmin(orders.UpdateOrderStatus))
	// own prefix: httprouter cannot mix a static segment with :orderNumber
	router.GET("/api/admin/live/orders", middleware.RequireAdmin(live.OrderFeedHandler(hub)))

	router.POST("/api/admin/products", middleware.RequireAdmin(products.CreateProduct))
	router.PUT("/api/admin/products/:id", middleware.RequireAdmin(products.UpdateProduct))
	router.DELETE("/api/admin/products/:id", middleware.RequireAdmin(products.DeleteProduct))
	router.POST("/api/admin/products/:id/image", middleware.RequireAdmin(products.UploadProductImage))

	router.PUT("/api/admin/settings/store", middleware.RequireAdmin(settings.UpdateStoreSettingsHandler))
}
