package usecase

import (
	"fmt"
	"strings"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
)

// Menu labels. The gateway renders these as the persistent keyboard and
// echoes the pressed label back as a plain text event.
const (
	MenuPlaceOrder     = "🛒 Place Order"
	MenuActiveOrder    = "📦 Active Order"
	MenuOrderSummary   = "🧾 Order Summary"
	MenuDeliveryStatus = "📍 Delivery Status"
	MenuPaymentStatus  = "💰 Payment Status"
	MenuContactSupport = "📞 Contact Support"
)

const msgWelcome = "👋 Welcome to ATTRAH\n\n" +
	"We specialize in premium attars crafted with care and long-lasting elegance.\n\n" +
	"You can place orders, complete secure payments, and track delivery updates directly from this bot.\n\n" +
	"Please use the menu below to continue."

const (
	msgAskName    = "👤 Please enter your Full Name:"
	msgAskMobile  = "📱 Please enter your Mobile Number:"
	msgAskProduct = "🧴 Select a Product:"
	msgAskSize    = "📦 Select Size:"
	msgAskPcs     = "🔢 How many pieces (Pcs)?"
	msgAskAddress = "🏠 Please enter your Full Delivery Address:"

	msgBadProduct = "Invalid product. Please select from the menu."
	msgBadSize    = "Invalid size. Please select from the menu."
	msgBadPcs     = "Please enter a valid number of pieces (1 or more)."

	msgProofReceived     = "✅ Payment screenshot received! We will verify it soon."
	msgProofNoOrder      = "We couldn't find an order for this payment screenshot.\nTap 🛒 Place Order to create one first."
	msgAlreadyProcessed  = "ℹ️ This order's payment is already processed.\nCheck 💰 Payment Status for details."
	msgStoreUnavailable  = "⚠️ We couldn't reach the order records right now.\nPlease try again in a moment."
	msgNoActiveOrders    = "📦 No Active Orders Found\n\nYou don't have any active orders at the moment.\nTap 🛒 Place Order to create a new one."
	msgNoOrdersYet       = "🧾 Order Summary\n\nYou haven't placed any orders yet.\nTap 🛒 Place Order to get started."
	msgNoPaymentsYet     = "💰 Payment Status\n\nYou haven't placed any orders yet.\nTap 🛒 Place Order to begin."
	msgNoDispatchedYet   = "📍 Delivery Status\n\nYou don't have any dispatched orders yet.\nOnce your order is shipped, the tracking details will appear here."
	msgAdminOrderMissing = "⚠️ That order no longer exists in the records. No changes were made."
	msgTokenExpired      = "This action has expired. Ask the customer to resubmit the payment screenshot."
)

func msgPaymentCaption(orderID string, amount int, vpa string) string {
	return fmt.Sprintf(
		"✅ Order Placed Successfully!\n\n"+
			"🧾 Order ID: %s\n"+
			"💰 Total Amount: ₹%d\n\n"+
			"Please pay using the QR above or UPI ID: %s\n\n"+
			"After payment, please upload the screenshot here.",
		orderID, amount, vpa)
}

func msgProofForwardCaption(o *entity.Order) string {
	return fmt.Sprintf(
		"🚨 New Payment Screenshot!\n\n"+
			"🧾 Order ID: %s\n"+
			"👤 %s (%s)\n"+
			"🧴 %s | %s | %d pcs\n"+
			"💰 ₹%d\n"+
			"📌 Current Status: %s",
		o.OrderID, o.Name, o.Mobile, o.Product, o.Size, o.Pcs, o.Amount, o.Status)
}

func msgVerifiedCustomer(orderID string) string {
	return fmt.Sprintf(
		"✅ Payment Verified\n\n"+
			"🧾 Order ID: %s\n"+
			"Your payment has been successfully verified.\n"+
			"Your order is now being prepared for dispatch.", orderID)
}

func msgRejectedCustomer(orderID string) string {
	return fmt.Sprintf(
		"❌ Payment Rejected\n\n"+
			"🧾 Order ID: %s\n"+
			"We were unable to verify your payment.\n"+
			"Please re-upload a clear payment screenshot, or retry the payment and send the new screenshot.", orderID)
}

func msgDispatchPrompt(orderID string) string {
	return fmt.Sprintf(
		"📬 Enter dispatch details for %s\n\n"+
			"Reply with exactly three lines:\n"+
			"Courier Name\n"+
			"Tracking ID\n"+
			"Tracking URL", orderID)
}

func msgDispatchedCustomer(o *entity.Order) string {
	return fmt.Sprintf(
		"🚚 Your Order Has Been Dispatched!\n\n"+
			"🧾 Order ID: %s\n"+
			"📦 Courier: %s\n"+
			"🔢 Tracking ID: %s\n"+
			"🌐 Track here: %s", o.OrderID, o.Courier, o.TrackingID, o.TrackingURL)
}

var activeStatusHint = map[entity.Status]string{
	entity.StatusPaymentPending:  "⏳ Awaiting payment.\nPlease complete the payment and upload the screenshot.",
	entity.StatusPaymentRejected: "❌ Payment was rejected.\nPlease re-upload a clear payment screenshot.",
	entity.StatusPaymentVerified: "✅ Payment verified.\nYour order is being prepared for dispatch.",
}

func msgActiveOrder(o *entity.Order) string {
	hint, ok := activeStatusHint[o.Status]
	if !ok {
		hint = "ℹ️ Order is being processed."
	}
	return fmt.Sprintf(
		"📦 Your Active Order\n\n"+
			"🧾 Order ID: %s\n"+
			"🧴 Product: %s\n"+
			"📦 Size: %s\n"+
			"🔢 Pcs: %d\n"+
			"💰 Amount: ₹%d\n\n"+
			"📌 Status: %s\n\n%s",
		o.OrderID, o.Product, o.Size, o.Pcs, o.Amount, o.Status, hint)
}

func msgOrderSummary(orders []entity.Order) string {
	lines := []string{"🧾 Your Order Summary\n"}
	for i, o := range orders {
		lines = append(lines, fmt.Sprintf(
			"%d. %s\n🧴 %s | %s | ₹%d\n📌 Status: %s\n",
			i+1, o.OrderID, o.Product, o.Size, o.Amount, o.Status))
	}
	return strings.Join(lines, "\n")
}

var paymentStatusHint = map[entity.Status]string{
	entity.StatusPaymentPending:  "⏳ Payment Pending\n\nWe haven't received a verified payment yet.\nPlease complete the payment using the QR and upload the screenshot.",
	entity.StatusPaymentRejected: "❌ Payment Rejected\n\nWe were unable to verify your payment.\nPlease re-upload a clear payment screenshot or retry the payment.",
	entity.StatusPaymentVerified: "✅ Payment Verified\n\nYour payment has been successfully verified.\nYour order is now being prepared for dispatch.",
	entity.StatusDispatched:      "🚚 Payment Verified & Order Dispatched\n\nYour payment was verified and the order has already been shipped.\nYou can check delivery details under 📍 Delivery Status.",
}

func msgPaymentStatus(o *entity.Order) string {
	hint, ok := paymentStatusHint[o.Status]
	if !ok {
		hint = "ℹ️ Payment information is being processed."
	}
	return fmt.Sprintf(
		"💰 Payment Status\n\n"+
			"🧾 Order ID: %s\n"+
			"💵 Amount: ₹%d\n"+
			"📌 Current Status: %s\n\n%s",
		o.OrderID, o.Amount, o.Status, hint)
}

func msgDeliveryStatus(orders []entity.Order) string {
	lines := []string{"📍 Delivery Status\n"}
	for i, o := range orders {
		courier, tid, turl := o.Courier, o.TrackingID, o.TrackingURL
		if courier == "" {
			courier = "Not provided"
		}
		if tid == "" {
			tid = "Not provided"
		}
		if turl == "" {
			turl = "Not provided"
		}
		lines = append(lines, fmt.Sprintf(
			"%d. Order ID: %s\n📦 Courier: %s\n🔢 Tracking ID: %s\n🌐 Track here: %s\n",
			i+1, o.OrderID, courier, tid, turl))
	}
	return strings.Join(lines, "\n")
}

func msgContactSupport(link string) string {
	return fmt.Sprintf("📞 Contact Support\n\nIf you have any questions or need help with your order, please reach out to us: %s", link)
}
