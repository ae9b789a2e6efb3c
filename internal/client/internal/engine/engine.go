package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gotomicro/ego/core/elog"
	uuid "github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// DefaultTimeout 单次请求的缺省超时
const DefaultTimeout = 10 * time.Second

var (
	// ErrTimeout 超时，和普通网络错误区分开
	ErrTimeout = errors.New("request timed out")
	// ErrNetworkUnavailable 连不上后端，报错信息里带 base URL 方便排查配置
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrServerRejected 4xx/5xx，带服务端解析出来的 message
	ErrServerRejected = errors.New("server rejected request")
	// ErrNotFound 404 单独拎出来，删除流程要把它当良性结果
	ErrNotFound = errors.New("record not found")
)

// HTTPClient 便于测试时替换
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Engine 管理端统一的请求引擎：一次请求、一个超时、
// 一套错误归类。不重试、不缓存、不去重
type Engine struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	logger  *elog.Component
}

func New(baseURL string, client HTTPClient, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Engine{
		baseURL: baseURL,
		client:  client,
		timeout: timeout,
		logger:  elog.DefaultLogger,
	}
}

func (e *Engine) BaseURL() string {
	return e.baseURL
}

// Do 发一次请求并把结果归一化：
// 成功返回响应体（空响应体和非 JSON 的 2xx 合成为 {}），
// 失败返回归好类的错误
func (e *Engine) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "序列化请求体失败")
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, rdr)
	if err != nil {
		return nil, errors.Wrap(err, "构造请求失败")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// 每个请求带一个追踪 id，服务端日志里好对
	req.Header.Set("X-Request-ID", uuid.New())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, e.classify(method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, e.classify(method, path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrap(ErrNotFound, serverMessage(data, resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrap(ErrServerRejected, serverMessage(data, resp.StatusCode))
	}
	// DELETE 返回 204 或空响应体：合成一个成功结果
	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(data) {
		// 2xx 但响应体不是 JSON，按裸成功处理而不是报错
		e.logger.Warn("响应体不是合法 JSON，按成功处理",
			elog.FieldKey(method+" "+path))
		return json.RawMessage("{}"), nil
	}
	return data, nil
}

func (e *Engine) classify(method, path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(ErrTimeout, "%s %s", method, path)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrapf(ErrTimeout, "%s %s", method, path)
	}
	return errors.Wrapf(ErrNetworkUnavailable, "base url %s: %v", e.baseURL, err)
}

func serverMessage(data []byte, code int) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return fmt.Sprintf("request failed with status %d", code)
}
