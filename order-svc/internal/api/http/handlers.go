package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"food-delivery/order-svc/internal/domain"
	"food-delivery/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Chat    service.ChatServiceInterface
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	QR      service.PaymentQRInterface
	Log     logrus.FieldLogger
}

func NewHandler(chatSvc service.ChatServiceInterface, catalogSvc service.CatalogServiceInterface, orderSvc service.OrderServiceInterface, qrSvc service.PaymentQRInterface, log logrus.FieldLogger) *Handler {
	return &Handler{
		Chat:    chatSvc,
		Catalog: catalogSvc,
		Orders:  orderSvc,
		QR:      qrSvc,
		Log:     log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/chat", h.chat).Methods("POST")
	r.HandleFunc("/cancel_order/{order_id}", h.cancelOrder).Methods("POST")
	r.HandleFunc("/get_qr_code/{order_id}", h.getQRCode).Methods("GET")

	r.HandleFunc("/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/menu_items/{id}/price", h.updateMenuItemPrice).Methods("PUT")

	r.HandleFunc("/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/orders/{id}/details", h.getOrderDetails).Methods("GET")
	r.HandleFunc("/orders/{id}/status", h.getOrderStatus).Methods("GET")
	r.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/orders/{id}/delivery", h.setDeliveryAddress).Methods("PUT")

	r.HandleFunc("/payments", h.createPayment).Methods("POST")
	r.HandleFunc("/payments/{id}/status", h.updatePaymentStatus).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.Chat.Handle(r.Context(), req))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "order_id")
	if !ok {
		return
	}
	result, err := h.Orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "order_id")
	if !ok {
		return
	}
	png, err := h.QR.PaymentQRCode(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type createRestaurantRequest struct {
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Cuisine  string          `json:"cuisine"`
	Rating   decimal.Decimal `json:"rating"`
	ImageURL string          `json:"image_url"`
	IsActive *bool           `json:"is_active"`
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	rest := domain.Restaurant{
		Name:     req.Name,
		Address:  req.Address,
		Cuisine:  req.Cuisine,
		Rating:   req.Rating,
		ImageURL: req.ImageURL,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	restaurants, err := h.Catalog.ListRestaurants(r.Context(), activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	item.RestaurantID = restaurantID
	if err := h.Catalog.CreateMenuItem(r.Context(), &item); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.Catalog.ListMenu(r.Context(), restaurantID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) updateMenuItemPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Catalog.UpdateMenuItemPrice(r.Context(), id, req.Price); err != nil {
		h.writeError(w, err)
		return
	}
	item, err := h.Catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type createOrderRequest struct {
	UserID       string            `json:"user_id"`
	RestaurantID int               `json:"restaurant_id"`
	Items        []domain.CartItem `json:"items"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = service.DefaultUserID
	}
	order, err := h.Orders.CreateOrder(r.Context(), req.UserID, req.RestaurantID, req.Items)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Orders.OrderDetails(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type orderStatusResponse struct {
	OrderID int                `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

func (h *Handler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderStatusResponse{OrderID: order.ID, Status: order.Status})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.Orders.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderStatusResponse{OrderID: order.ID, Status: order.Status})
}

func (h *Handler) setDeliveryAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	delivery, err := h.Orders.SetDeliveryAddress(r.Context(), id, req.Address)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

type createPaymentRequest struct {
	OrderID int                  `json:"order_id"`
	Amount  decimal.Decimal      `json:"amount"`
	Method  domain.PaymentMethod `json:"method"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Method == "" {
		req.Method = domain.PaymentOnline
	}
	payment, err := h.Orders.CreatePayment(r.Context(), req.OrderID, req.Amount, req.Method)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status domain.PaymentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := h.Orders.UpdatePaymentStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.WithError(err).Error("request failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
