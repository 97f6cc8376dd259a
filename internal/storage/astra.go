package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"engagement-service/internal/config"
	"engagement-service/internal/domain/entities"
)

const astraAPIPath = "/api/json/v1/"

// AstraSource 基于Astra DB Data API的互动数据源
type AstraSource struct {
	config     config.AstraConfig
	httpClient *http.Client
}

type findCommand struct {
	Find findParams `json:"find"`
}

type findParams struct {
	Filter     map[string]interface{} `json:"filter"`
	Projection map[string]int         `json:"projection"`
	Options    *findOptions           `json:"options,omitempty"`
}

type findOptions struct {
	PageState string `json:"pageState,omitempty"`
}

type findResponse struct {
	Data *struct {
		Documents     []map[string]interface{} `json:"documents"`
		NextPageState *string                  `json:"nextPageState"`
	} `json:"data"`
	Errors []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	} `json:"errors"`
}

// NewAstraSource 创建Astra数据源
func NewAstraSource(cfg config.AstraConfig, httpClient *http.Client) *AstraSource {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &AstraSource{
		config:     cfg,
		httpClient: httpClient,
	}
}

// CollectionURL 集合的Data API地址
func (s *AstraSource) CollectionURL() string {
	return strings.TrimRight(s.config.APIEndpoint, "/") + astraAPIPath + s.config.Keyspace + "/" + s.config.Collection
}

// FetchRecords 读取集合中的全部文档，自动跟随分页
func (s *AstraSource) FetchRecords(ctx context.Context) ([]entities.EngagementRecord, error) {
	records := make([]entities.EngagementRecord, 0)
	pageState := ""

	for {
		docs, next, err := s.findPage(ctx, pageState)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			records = append(records, entities.NewEngagementRecord(doc))
		}
		if next == "" {
			return records, nil
		}
		pageState = next
	}
}

func (s *AstraSource) findPage(ctx context.Context, pageState string) ([]map[string]interface{}, string, error) {
	// 无过滤条件，只读取需要的字段
	cmd := findCommand{Find: findParams{
		Filter:     map[string]interface{}{},
		Projection: projection(),
	}}
	// 非首页时携带分页状态
	if pageState != "" {
		cmd.Find.Options = &findOptions{PageState: pageState}
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, "", errors.Wrap(err, "序列化查询命令失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.CollectionURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, "", errors.Wrap(err, "创建数据查询请求失败")
	}
	req.Header.Set("Token", s.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "查询数据源失败")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "读取数据源响应失败")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errors.Errorf("数据源返回错误状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// 保留数字原文，交给实体层统一转换
	var result findResponse
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return nil, "", errors.Wrap(err, "解析数据源响应失败")
	}

	// Data API即使返回200也可能携带errors
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, "", errors.Errorf("数据源返回错误: %s", strings.Join(msgs, "; "))
	}

	if result.Data == nil {
		return nil, "", errors.New("数据源响应缺少data字段")
	}

	next := ""
	if result.Data.NextPageState != nil {
		next = *result.Data.NextPageState
	}
	return result.Data.Documents, next, nil
}

// Close 无需释放资源
func (s *AstraSource) Close() error {
	return nil
}
