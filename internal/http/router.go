package http

import (
	"net/http"
	"time"

	"github.com/Weryck-Lemos/ElectroStock/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles every page route. Auth pages are public; everything
// else sits behind the session middleware, and the admin pages behind the
// role gate on top of that.
func NewRouter(auth *AuthHandler, shop *ShopHandler, ord *OrdersHandler, sessions session.Store, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(sessions))

		r.Post("/auth/logout", auth.Logout)
		r.Get("/me", auth.Me)
		r.Put("/me", auth.UpdateProfile)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", shop.GetShop)
			r.Post("/cart/items", shop.AddCartItem)
			r.Put("/cart/items/{item_id}", shop.SetCartQuantity)
			r.Delete("/cart/items/{item_id}", shop.RemoveCartItem)
			r.Post("/orders", shop.SubmitOrder)
		})

		r.Get("/orders/me", ord.MyOrders)
		r.Delete("/orders/{order_id}", ord.CancelOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/dashboard", ord.AdminDashboard)
			r.Post("/orders/{order_id}/{action}", ord.TransitionOrder)
			r.Get("/reports", ord.Reports)
		})
	})

	return r
}
