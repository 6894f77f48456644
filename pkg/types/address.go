package types

// ShippingAddress mirrors the order service address substructure. It is
// attached to an order only for courier delivery.
type ShippingAddress struct {
	City          string `json:"city" validate:"required"`
	StreetAddress string `json:"street_address" validate:"required"`
	Apartment     string `json:"apartment" validate:"required"`
	PostalCode    string `json:"postal_code,omitempty"`
	AddressNotes  string `json:"address_notes,omitempty"`
}
