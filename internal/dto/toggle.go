package dto

import "time"

// ToggleResponse reports whether the relation exists after the call
type ToggleResponse struct {
	Active bool `json:"active"`
}

type SubscriptionResponse struct {
	Channel      ChannelResponse `json:"channel"`
	SubscribedAt time.Time       `json:"subscribedAt"`
}
