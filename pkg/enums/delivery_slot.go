package enums

// DeliverySlot is an optional scheduling hint captured at checkout.
type DeliverySlot string

const (
	DeliverySlotMorning   DeliverySlot = "morning"
	DeliverySlotAfternoon DeliverySlot = "afternoon"
	DeliverySlotEvening   DeliverySlot = "evening"
)

func (s DeliverySlot) IsValid() bool {
	switch s {
	case DeliverySlotMorning, DeliverySlotAfternoon, DeliverySlotEvening:
		return true
	}
	return false
}
