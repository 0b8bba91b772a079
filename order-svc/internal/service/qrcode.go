package service

import (
	"context"
	"fmt"

	"food-delivery/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(data string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}

// PaymentQRData is the text encoded into a payment QR image.
func PaymentQRData(orderID int, total decimal.Decimal, restaurant string) string {
	return fmt.Sprintf("Payment for Order #%d\nAmount: $%s\nRestaurant: %s", orderID, domain.FormatMoney(total), restaurant)
}

// PaymentQRService renders QR codes for orders with a pending payment. The
// cache is optional.
type PaymentQRService struct {
	orders    OrderRepository
	cache     QRCache
	generator QRGenerator
	baseURL   string
	log       logrus.FieldLogger
}

func NewPaymentQRService(orders OrderRepository, cache QRCache, generator QRGenerator, baseURL string, log logrus.FieldLogger) *PaymentQRService {
	return &PaymentQRService{
		orders:    orders,
		cache:     cache,
		generator: generator,
		baseURL:   baseURL,
		log:       log,
	}
}

func (s *PaymentQRService) QRCodeURL(orderID int) string {
	return fmt.Sprintf("%s/get_qr_code/%d", s.baseURL, orderID)
}

func (s *PaymentQRService) PaymentQRCode(ctx context.Context, orderID int) ([]byte, error) {
	details, err := s.orders.GetOrderDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if details.Payment == nil || details.Payment.Status != domain.PaymentPending {
		return nil, domain.Errorf(domain.ErrInvalidInput, "No pending payment for this order")
	}

	var key string
	if s.cache != nil {
		key = s.cache.QRCodeKey(orderID)
		png, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Warn("qr cache read failed")
		} else if ok {
			return png, nil
		}
	}

	png, err := s.generator.Generate(PaymentQRData(orderID, details.Order.Total, details.RestaurantName))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, png); err != nil {
			s.log.WithError(err).WithField("order_id", orderID).Warn("qr cache write failed")
		}
	}
	return png, nil
}

var _ PaymentQRInterface = (*PaymentQRService)(nil)
