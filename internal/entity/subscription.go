package entity

import "time"

type SubscriptionToggle struct {
	Subscribed bool `json:"subscribed"`
}

// SubscriptionEntry is one side of a follow edge with the time it was created.
type SubscriptionEntry struct {
	Profile
	SubscribedAt time.Time `json:"subscribedAt"`
}
