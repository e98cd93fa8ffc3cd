package notifications

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anonto42/souq-admin/backend/internal/models"
)

// amountPrinter renders monetary totals with thousands separators at write
// time; notification messages are immutable once created.
var amountPrinter = message.NewPrinter(language.English)

func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// statusDescription is the bilingual body of a customer notification for a
// given target status.
type statusDescription struct {
	ar string // format: order number
	en string
}

// generalStatusDescriptions covers every status that does not get its own
// dedicated customer notification type. Messages for Preparing, Shipped,
// Delivered and Cancelled are composed separately.
var generalStatusDescriptions = map[models.OrderStatus]statusDescription{
	models.OrderStatusReceived: {
		ar: "تم استلام طلبك رقم %s.",
		en: "Your order #%s has been received.",
	},
	models.OrderStatusUnderReview: {
		ar: "طلبك رقم %s قيد المراجعة.",
		en: "Your order #%s is under review.",
	},
	models.OrderStatusArrivedHub: {
		ar: "وصل طلبك رقم %s إلى مركز التوزيع.",
		en: "Your order #%s has arrived at our distribution hub.",
	},
	models.OrderStatusOutForDelivery: {
		ar: "طلبك رقم %s في الطريق إليك.",
		en: "Your order #%s is out for delivery.",
	},
	models.OrderStatusDeliveryFailed: {
		ar: "تعذر توصيل طلبك رقم %s. سنتواصل معك قريباً.",
		en: "Delivery of your order #%s failed. We will contact you shortly.",
	},
	models.OrderStatusAwaitingPayment: {
		ar: "طلبك رقم %s بانتظار الدفع.",
		en: "Your order #%s is awaiting payment.",
	},
}

// paymentConfirmedClause is appended to a general status message when the
// same transition also moved the payment state to paid. Composition happens
// here, in one place, so the clause ordering cannot drift.
const (
	paymentConfirmedClauseAR = " تم تأكيد استلام الدفعة."
	paymentConfirmedClauseEN = " Your payment has been confirmed."
)

// generalStatusMessage builds the customer-facing body for a transition into
// a status without a dedicated notification type.
func generalStatusMessage(e OrderStatusChanged) models.Message {
	desc, ok := generalStatusDescriptions[e.NewStatus]
	if !ok {
		// Unknown status: staff forced a value outside the table. Fall back
		// to a literal rendering rather than dropping the notification.
		desc = statusDescription{
			ar: "تم تحديث حالة طلبك رقم %s.",
			en: "The status of your order #%s has been updated.",
		}
	}
	ar := fmt.Sprintf(desc.ar, e.OrderNumber)
	en := fmt.Sprintf(desc.en, e.OrderNumber)
	if e.PaymentConfirmed() {
		ar += paymentConfirmedClauseAR
		en += paymentConfirmedClauseEN
	}
	return models.Bilingual(ar, en)
}

func processingMessage(e OrderStatusChanged) models.Message {
	return models.Bilingual(
		fmt.Sprintf("جاري تجهيز طلبك رقم %s.", e.OrderNumber),
		fmt.Sprintf("Your order #%s is being prepared.", e.OrderNumber),
	)
}

func shippedMessage(e OrderStatusChanged) models.Message {
	if e.TrackingNumber != "" {
		return models.Bilingual(
			fmt.Sprintf("تم شحن طلبك رقم %s. رقم التتبع: %s", e.OrderNumber, e.TrackingNumber),
			fmt.Sprintf("Your order #%s has been shipped. Tracking number: %s", e.OrderNumber, e.TrackingNumber),
		)
	}
	return models.Bilingual(
		fmt.Sprintf("تم شحن طلبك رقم %s.", e.OrderNumber),
		fmt.Sprintf("Your order #%s has been shipped.", e.OrderNumber),
	)
}

func deliveredMessage(e OrderStatusChanged) models.Message {
	return models.Bilingual(
		fmt.Sprintf("تم توصيل طلبك رقم %s. شكراً لتسوقك معنا!", e.OrderNumber),
		fmt.Sprintf("Your order #%s has been delivered. Thank you for shopping with us!", e.OrderNumber),
	)
}

func cancelledMessage(e OrderStatusChanged) models.Message {
	if e.CancelReason != "" {
		return models.Bilingual(
			fmt.Sprintf("تم إلغاء طلبك رقم %s. السبب: %s", e.OrderNumber, e.CancelReason),
			fmt.Sprintf("Your order #%s has been cancelled. Reason: %s", e.OrderNumber, e.CancelReason),
		)
	}
	return models.Bilingual(
		fmt.Sprintf("تم إلغاء طلبك رقم %s.", e.OrderNumber),
		fmt.Sprintf("Your order #%s has been cancelled.", e.OrderNumber),
	)
}

func welcomeMessage() models.Message {
	return models.Bilingual(
		"أهلاً بك في متجرنا! تصفح أحدث المنتجات والعروض.",
		"Welcome to our store! Browse our latest products and offers.",
	)
}

func orderConfirmedMessage(e NewOrderPlaced) models.Message {
	return models.Bilingual(
		fmt.Sprintf("تم استلام طلبك رقم %s بنجاح.", e.OrderNumber),
		fmt.Sprintf("Your order #%s has been placed successfully.", e.OrderNumber),
	)
}
