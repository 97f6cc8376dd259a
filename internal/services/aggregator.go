package services

import (
	"sort"

	"engagement-service/internal/domain/entities"
)

// Weekdays 表现数据使用的工作日循环
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

type accumulator struct {
	engagement float64
	reach      float64
	posts      int
}

// Aggregate 按内容分组汇总互动数据，结果按分组键升序排列
func Aggregate(records []entities.EngagementRecord) []entities.EngagementSummary {
	groups := make(map[string]*accumulator)
	for _, r := range records {
		// 没有分组键的记录不参与分组
		if !r.HasKey {
			continue
		}
		acc, ok := groups[r.ContentKey]
		if !ok {
			acc = &accumulator{}
			groups[r.ContentKey] = acc
		}
		acc.engagement += r.Engagement()
		acc.reach += r.Reach()
		acc.posts++
	}

	keys := make([]string, 0, len(groups))
	var grandTotal float64
	for key, acc := range groups {
		keys = append(keys, key)
		grandTotal += acc.engagement
	}
	sort.Strings(keys)

	summaries := make([]entities.EngagementSummary, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]
		summary := entities.EngagementSummary{
			ContentKey:        key,
			TotalEngagement:   acc.engagement,
			TotalPosts:        acc.posts,
			TotalReach:        acc.reach,
			AverageEngagement: acc.engagement / float64(acc.posts),
		}
		if grandTotal != 0 {
			summary.EngagementPercentage = acc.engagement / grandTotal * 100
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// ToDailyEntries 按行号为汇总数据分配工作日并附带上一行的数值
func ToDailyEntries(summaries []entities.EngagementSummary) []entities.DailyPerformance {
	entries := make([]entities.DailyPerformance, 0, len(summaries))
	for i, s := range summaries {
		// impressions与reach都取自total_reach
		entry := entities.DailyPerformance{
			Name:        Weekdays[i%len(Weekdays)],
			Engagement:  s.TotalEngagement,
			Impressions: s.TotalReach,
			Reach:       s.TotalReach,
		}
		if i > 0 {
			prev := summaries[i-1]
			prevEngagement := prev.TotalEngagement
			prevImpressions := prev.TotalReach
			prevReach := prev.TotalReach
			entry.PrevEngagement = &prevEngagement
			entry.PrevImpressions = &prevImpressions
			entry.PrevReach = &prevReach
		}
		entries = append(entries, entry)
	}
	return entries
}
