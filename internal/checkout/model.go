package checkout

// PaymentMethod discriminates the payment section's shape: card fields are
// only meaningful for MethodCreditCard.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit-card"
	MethodPayPal     PaymentMethod = "paypal"
	MethodBitcoin    PaymentMethod = "bitcoin"
)

// ShippingMethod selects one of the fixed shipping price table entries.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

var shippingPrices = map[ShippingMethod]float64{
	ShippingStandard:  0,
	ShippingExpress:   8.50,
	ShippingOvernight: 19.99,
}

// ShippingPrice returns the method's price. Unknown methods are rejected by
// validation before this is consulted.
func ShippingPrice(m ShippingMethod) float64 {
	return shippingPrices[m]
}

type Billing struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Address   string `json:"address" validate:"required,min=2"`
	City      string `json:"city" validate:"required,min=2"`
	Country   string `json:"country" validate:"required,min=2"`
	Zip       string `json:"zip" validate:"required,zip"`
}

// Shipping address fields are only required when the order does not ship to
// the billing address.
type Shipping struct {
	Method        ShippingMethod `json:"method" validate:"required,oneof=standard express overnight"`
	SameAsBilling bool           `json:"same_as_billing"`
	Address       string         `json:"address" validate:"required_if=SameAsBilling false,omitempty,min=2"`
	City          string         `json:"city" validate:"required_if=SameAsBilling false,omitempty,min=2"`
	Zip           string         `json:"zip" validate:"required_if=SameAsBilling false,omitempty,zip"`
	Country       string         `json:"country" validate:"required_if=SameAsBilling false,omitempty,min=2"`
}

// Card fields are only required when paying by credit card.
type Payment struct {
	Method         PaymentMethod `json:"method" validate:"required,oneof=credit-card paypal bitcoin"`
	CardNumber     string        `json:"card_number" validate:"required_if=Method credit-card,omitempty,cardnumber"`
	CardHolder     string        `json:"card_holder" validate:"required_if=Method credit-card,omitempty,min=3"`
	ExpirationDate string        `json:"expiration_date" validate:"required_if=Method credit-card,omitempty,expdate"`
	CVC            string        `json:"cvc" validate:"required_if=Method credit-card,omitempty,cvc"`
}

type Additional struct {
	Notes            string `json:"notes"`
	MarketingConsent bool   `json:"marketing_consent"`
	TermsConsent     bool   `json:"terms_consent" validate:"eq=true"`
}

// Form is the full multi-section checkout payload. Validation always runs
// against the current conditional state, so switching SameAsBilling on or the
// payment method away from credit-card leaves no orphaned field errors.
type Form struct {
	Billing    Billing    `json:"billing"`
	Shipping   Shipping   `json:"shipping"`
	Payment    Payment    `json:"payment"`
	Additional Additional `json:"additional"`
}
