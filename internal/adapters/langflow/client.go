package langflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const runEndpoint = "/lf/%s/api/v1/run/%s"

// Config 流程服务配置
type Config struct {
	BaseURL    string
	LangflowID string
	FlowID     string
	Token      string
}

// Client 流程服务客户端
type Client struct {
	config     Config
	httpClient *http.Client
}

// runRequest 运行流程的请求体
type runRequest struct {
	InputValue string `json:"input_value"`
	OutputType string `json:"output_type"`
	InputType  string `json:"input_type"`
}

// NewClient 创建流程服务客户端，httpClient为nil时使用不带超时的默认客户端
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// RunURL 流程运行地址
func (c *Client) RunURL() string {
	return strings.TrimRight(c.config.BaseURL, "/") + fmt.Sprintf(runEndpoint, c.config.LangflowID, c.config.FlowID)
}

// RunFlow 以对话模式运行流程，原样返回响应JSON
func (c *Client) RunFlow(ctx context.Context, text string) (json.RawMessage, error) {
	payload, err := json.Marshal(runRequest{
		InputValue: text,
		OutputType: "chat",
		InputType:  "chat",
	})
	if err != nil {
		return nil, errors.Wrap(err, "序列化流程请求失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RunURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "创建流程请求失败")
	}
	// 流程服务使用Bearer令牌认证
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "调用流程服务失败")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "读取流程响应失败")
	}

	// 非2xx状态视为上游失败
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("流程服务返回错误状态 %d: %s", resp.StatusCode, truncate(body, 512))
	}

	if !json.Valid(body) {
		return nil, errors.Errorf("流程服务返回非JSON响应: %s", truncate(body, 512))
	}

	return json.RawMessage(body), nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	// 回退到字符边界，避免截断多字节字符
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
