package entities

// EngagementSummary 按内容分组后的互动汇总
type EngagementSummary struct {
	ContentKey           string  `json:"$vectorize"`
	TotalEngagement      float64 `json:"total_engagement"`      // 点赞+评论总数
	TotalPosts           int     `json:"total_posts"`           // 该内容的记录数
	TotalReach           float64 `json:"total_reach"`           // 分享+浏览+点击+曝光总数
	AverageEngagement    float64 `json:"average_engagement"`    // 平均互动数
	EngagementPercentage float64 `json:"engagement_percentage"` // 占全部互动的百分比
}
