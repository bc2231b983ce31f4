package constants

type Gateway struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type School struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

var PaymentGateways = []Gateway{
	{ID: "phonepe", Name: "PhonePe", Enabled: true},
	{ID: "paytm", Name: "Paytm", Enabled: true},
	{ID: "razorpay", Name: "Razorpay", Enabled: true},
	{ID: "stripe", Name: "Stripe", Enabled: true},
}

var Schools = []School{
	{ID: "65b0e6293e9f76a9694d84b4", Name: "Springfield Elementary School", Code: "SPFE", Address: "123 Main St, Springfield", Contact: "555-0123"},
	{ID: "65b0e6293e9f76a9694d84b5", Name: "Shelbyville High School", Code: "SHHS", Address: "456 Oak Ave, Shelbyville", Contact: "555-0456"},
	{ID: "65b0e6293e9f76a9694d84b6", Name: "Ogdenville Academy", Code: "OGA", Address: "789 Pine Rd, Ogdenville", Contact: "555-0789"},
	{ID: "65b0e6293e9f76a9694d84b7", Name: "North Haverbrook Institute", Code: "NHI", Address: "101 Maple Blvd, North Haverbrook", Contact: "555-1011"},
}

// GatewayNames lists the display names accepted by the payment form.
func GatewayNames() []string {
	out := make([]string, 0, len(PaymentGateways))
	for _, g := range PaymentGateways {
		if g.Enabled {
			out = append(out, g.Name)
		}
	}
	return out
}

// Default list query state.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "payment_time"
	DefaultOrder = "desc"
)
