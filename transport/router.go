package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"catalog/pkg/domain/service"
)

type Services struct {
	Orders     service.OrderService
	Products   service.ProductService
	Categories service.CategoryService
	Users      service.UserService
	Tokens     *service.Tokens
}

// Router wires the REST API under /api/v1 and serves uploaded product
// images from the public uploads directory.
func Router(s Services, uploadDir string) http.Handler {
	r := mux.NewRouter()

	r.PathPrefix("/public/uploads/").Handler(
		http.StripPrefix("/public/uploads/", http.FileServer(http.Dir(uploadDir))))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(s.Tokens))

	registerOrderRoutes(api, s.Orders)
	registerProductRoutes(api, s.Products, uploadDir)
	registerCategoryRoutes(api, s.Categories)
	registerUserRoutes(api, s.Users)

	return logMiddleware(r)
}

func registerOrderRoutes(r *mux.Router, orders service.OrderService) {
	h := &orderHandlers{orders: orders}
	// Fixed paths are registered before the {id} routes so mux does not
	// swallow them as identifiers.
	r.HandleFunc("/orders/get/totalsales", h.totalSales).Methods(http.MethodGet)
	r.HandleFunc("/orders/get/count", h.count).Methods(http.MethodGet)
	r.HandleFunc("/orders/get/usersorders/{userid}", h.userOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.list).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.create).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.updateStatus).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id}", h.delete).Methods(http.MethodDelete)
}

func registerProductRoutes(r *mux.Router, products service.ProductService, uploadDir string) {
	h := &productHandlers{products: products, uploadDir: uploadDir}
	r.HandleFunc("/products/get/count", h.count).Methods(http.MethodGet)
	r.HandleFunc("/products/get/featured/{count}", h.featured).Methods(http.MethodGet)
	r.HandleFunc("/products", h.list).Methods(http.MethodGet)
	r.HandleFunc("/products", requireAdmin(h.create)).Methods(http.MethodPost)
	r.HandleFunc("/products/gallery-images/{id}", requireAdmin(h.updateGallery)).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", requireAdmin(h.update)).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", requireAdmin(h.delete)).Methods(http.MethodDelete)
}

func registerCategoryRoutes(r *mux.Router, categories service.CategoryService) {
	h := &categoryHandlers{categories: categories}
	r.HandleFunc("/categories", h.list).Methods(http.MethodGet)
	r.HandleFunc("/categories", requireAdmin(h.create)).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", requireAdmin(h.update)).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", requireAdmin(h.delete)).Methods(http.MethodDelete)
}

func registerUserRoutes(r *mux.Router, users service.UserService) {
	h := &userHandlers{users: users}
	r.HandleFunc("/users/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/users/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/users/get/count", h.count).Methods(http.MethodGet)
	r.HandleFunc("/users", h.list).Methods(http.MethodGet)
	r.HandleFunc("/users", requireAdmin(h.create)).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", requireAdmin(h.update)).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", requireAdmin(h.delete)).Methods(http.MethodDelete)
}
