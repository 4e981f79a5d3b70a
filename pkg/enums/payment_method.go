package enums

// PaymentMethod is how the customer pays at checkout.
type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodCOD
}

// RequiresGateway reports whether the method needs an upstream payment order.
func (m PaymentMethod) RequiresGateway() bool {
	return m == PaymentMethodRazorpay
}
