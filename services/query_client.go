/*
 * @Date: 2025-06-14 22:48:09
 * @Description: 基于TCP端口43的WHOIS查询客户端
 */
package services

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"whoisgate/types"
)

const (
	whoisPort        = "43"
	readChunkSize    = 4096
	defaultWhoisWait = 10 * time.Second
)

// QueryClient 对WHOIS服务器执行单次查询：
// 建立一条TCP连接，发送一行以CRLF结尾的查询，读取到对端关闭为止
// 每次查询一条连接，不复用、不重试
type QueryClient struct {
	timeout time.Duration
	limiter *rate.Limiter // 出站节流，nil表示不限速
	dialer  *net.Dialer
}

func NewQueryClient(timeout time.Duration) *QueryClient {
	if timeout <= 0 {
		timeout = defaultWhoisWait
	}
	return &QueryClient{
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

// SetPacing 设置出站查询速率限制，批量查询时避免压垮注册局
func (c *QueryClient) SetPacing(perSecond float64, burst int) {
	if perSecond <= 0 {
		c.limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Query 向server:43发送query并返回完整响应文本
// 读取过程中连接中断时，已读到的字节仍作为尽力而为的响应返回；
// 一个字节都没读到的读错误才算查询失败
func (c *QueryClient) Query(ctx context.Context, server, query string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &types.QueryError{Server: server, Err: err}
		}
	}

	// server可以自带端口（测试或非标准部署），否则补上43
	addr := server
	if _, _, splitErr := net.SplitHostPort(server); splitErr != nil {
		addr = net.JoinHostPort(server, whoisPort)
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", &types.QueryError{Server: server, Err: err}
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write([]byte(query + "\r\n")); err != nil {
		return "", &types.QueryError{Server: server, Err: err}
	}

	var response strings.Builder
	buf := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			response.Write(buf[:n])
		}
		if err != nil {
			// io.EOF是正常结束；其他错误只在完全没有数据时上报
			if response.Len() == 0 && !errors.Is(err, io.EOF) {
				return "", &types.QueryError{Server: server, Err: err}
			}
			break
		}
	}

	return response.String(), nil
}
