package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/util/log"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var client *HttpClient

// HttpClient 出站调用统一走这里, 自动透传trace
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient(timeout time.Duration) *HttpClient {
	return &HttpClient{
		Client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

func GetHttpClient() *HttpClient {
	if client == nil {
		timeout := 5 * time.Second
		if c := config.GetConfig(); c != nil && c.Suggestion.Timeout > 0 {
			timeout = time.Duration(c.Suggestion.Timeout) * time.Millisecond
		}
		client = NewHttpClient(timeout)
	}
	return client
}

// SendRequest 发送 HTTP 请求, 响应体按json对象解析
func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body any) (map[string]any, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error("close response body fail: %v", closeErr)
		}
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, responseBody)
	}

	var responseMap map[string]any
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return responseMap, nil
}

// Suggest 调用AI联想服务, 返回 {"code":0,"data":{"suggestions":[...]}}
func (c *HttpClient) Suggest(ctx context.Context, url string, term string, count int) (map[string]any, error) {
	body := make(map[string]any)
	body["term"] = term
	body["count"] = count

	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Charset"] = consts.CharSetUTF8

	// 如果是测试环境则向测试环境发送请求
	if conf := config.GetConfig(); conf != nil && conf.State == "test" {
		header["X-Xh-Env"] = "test"
	}

	return c.SendRequest(ctx, consts.Post, url, header, body)
}
