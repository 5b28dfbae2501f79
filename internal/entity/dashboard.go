package entity

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ChannelStats struct {
	TotalVideos            int64        `json:"totalVideos"`
	TotalSubscribers       int64        `json:"totalSubscribers"`
	TotalLikes             int64        `json:"totalLikes"`
	TotalViews             int64        `json:"totalViews"`
	SubscriberGainedPerDay []DailyCount `json:"subscriberGainedPerDay"`
}
