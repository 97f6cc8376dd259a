package entities

// DailyPerformance 按工作日标记的表现数据
type DailyPerformance struct {
	Name            string   `json:"name"`
	Engagement      float64  `json:"engagement"`
	Impressions     float64  `json:"impressions"`
	Reach           float64  `json:"reach"`
	PrevEngagement  *float64 `json:"prevEngagement"`
	PrevImpressions *float64 `json:"prevImpressions"`
	PrevReach       *float64 `json:"prevReach"`
}
