package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 文档字段名
const (
	FieldContentKey  = "$vectorize"
	FieldLikes       = "likes"
	FieldComments    = "comments"
	FieldShares      = "shares"
	FieldViews       = "views"
	FieldClicks      = "clicks"
	FieldImpressions = "impressions"
)

// MetricFields 参与统计的六个数值字段
var MetricFields = []string{
	FieldLikes,
	FieldComments,
	FieldShares,
	FieldViews,
	FieldClicks,
	FieldImpressions,
}

// EngagementRecord 单条互动数据
type EngagementRecord struct {
	ContentKey  string  `json:"$vectorize"`
	HasKey      bool    `json:"-"` // 原始文档是否带有分组键
	Likes       float64 `json:"likes"`
	Comments    float64 `json:"comments"`
	Shares      float64 `json:"shares"`
	Views       float64 `json:"views"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
}

// NewEngagementRecord 从原始文档构建互动记录，无法识别的数值一律按0处理
func NewEngagementRecord(doc map[string]interface{}) EngagementRecord {
	record := EngagementRecord{
		Likes:       ToNumber(doc[FieldLikes]),
		Comments:    ToNumber(doc[FieldComments]),
		Shares:      ToNumber(doc[FieldShares]),
		Views:       ToNumber(doc[FieldViews]),
		Clicks:      ToNumber(doc[FieldClicks]),
		Impressions: ToNumber(doc[FieldImpressions]),
	}

	switch key := doc[FieldContentKey].(type) {
	case nil:
	case string:
		record.ContentKey, record.HasKey = key, true
	case []byte:
		record.ContentKey, record.HasKey = string(key), true
	case float64:
		record.ContentKey, record.HasKey = formatKey(key), true
	case json.Number:
		// 17 与 17.0 归为同一分组
		if f, err := key.Float64(); err == nil {
			record.ContentKey = formatKey(f)
		} else {
			record.ContentKey = key.String()
		}
		record.HasKey = true
	default:
		record.ContentKey, record.HasKey = fmt.Sprint(key), true
	}

	return record
}

// Engagement 点赞数+评论数
func (r EngagementRecord) Engagement() float64 {
	return r.Likes + r.Comments
}

// Reach 分享+浏览+点击+曝光
func (r EngagementRecord) Reach() float64 {
	return r.Shares + r.Views + r.Clicks + r.Impressions
}

// ToNumber 将任意值转换为数值，失败时返回0
func ToNumber(v interface{}) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int8:
		n = float64(val)
	case int16:
		n = float64(val)
	case int32:
		n = float64(val)
	case int64:
		n = float64(val)
	case uint:
		n = float64(val)
	case uint8:
		n = float64(val)
	case uint16:
		n = float64(val)
	case uint32:
		n = float64(val)
	case uint64:
		n = float64(val)
	case bool:
		if val {
			n = 1
		}
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		n = f
	case string:
		return parseNumber(val)
	case []byte:
		return parseNumber(string(val))
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func formatKey(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
