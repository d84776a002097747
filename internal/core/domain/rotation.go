package domain

// RotationSlot annotates one roster entry with its place in the payout queue.
type RotationSlot struct {
	Member Member `json:"member"`
	IsNext bool   `json:"isNext"` // True for the member currently due a payout
}
