/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package http

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/slices"

	"github.com/caiflower/rest-client/pkg/logger"
	"github.com/caiflower/rest-client/pkg/tools"
)

var ErrBodyNotRewindable = fmt.Errorf("request body cannot be rewound for retry")

// Transport performs one HTTP exchange. *http.Client implements it.
type Transport interface {
	Do(*http.Request) (*http.Response, error)
}

type TransportFunc func(*http.Request) (*http.Response, error)

func (f TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

type Config struct {
	Timeout               time.Duration `yaml:"timeout" default:"20s"`                //请求总的超时时间
	MaxIdleConns          int           `yaml:"max_idle_conns" default:"1000"`        //最大的空闲连接数
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host" default:"30"` //单个host的最大空闲连接数
	ConnectTimeout        time.Duration `yaml:"connect_timeout" default:"30s"`        //建立连接超时时间
	KeepAliveInterval     time.Duration `yaml:"keep_alive_interval" default:"30s"`    //存活探测间隔时间
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout" default:"500s"`     //连接的最大空闲时间
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout" default:"5s"`   //执行TLS握手的超时时间
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout"`              //写Header与写Body之间，等待服务端报头的超时时间
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout"`              //响应包头的最大超时时间
	DisablePool           bool          `yaml:"disable_pool"`                         //禁用连接池意思是只使用短连接
	MaxRetries            uint          `yaml:"max_retries"`                          //重试次数，默认0不重试
	RetryStatusCodes      []int         `yaml:"retry_status_codes" default:"502,503,504"`
	RetryInitialInterval  time.Duration `yaml:"retry_initial_interval" default:"500ms"`
	RetryMaxElapsed       time.Duration `yaml:"retry_max_elapsed" default:"10s"`
}

func LoadConfig(filename string) (Config, error) {
	config := Config{}
	if err := tools.LoadConfig(filename, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// NewTransport builds an *http.Client from config. With MaxRetries > 0 transport errors and
// RetryStatusCodes are retried with exponential backoff, and the last outcome is returned as is.
func NewTransport(config Config) Transport {
	_ = tools.SetDefaults(&config)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.ConnectTimeout,
			KeepAlive: config.KeepAliveInterval,
		}).DialContext,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		DisableKeepAlives:     config.DisablePool,
	}
	client := &http.Client{Timeout: config.Timeout, Transport: transport}

	logger.Debug("http transport config: %s", tools.ToJson(config))
	if config.MaxRetries == 0 {
		return client
	}

	return &retryTransport{
		next:        client,
		maxRetries:  config.MaxRetries,
		statusCodes: config.RetryStatusCodes,
		interval:    config.RetryInitialInterval,
		maxElapsed:  config.RetryMaxElapsed,
	}
}

type retryTransport struct {
	next        Transport
	maxRetries  uint
	statusCodes []int
	interval    time.Duration
	maxElapsed  time.Duration
}

func (t *retryTransport) Do(req *http.Request) (*http.Response, error) {
	_backOff := backoff.NewExponentialBackOff()
	_backOff.InitialInterval = t.interval
	_backOff.MaxElapsedTime = t.maxElapsed
	backOff := backoff.WithContext(backoff.WithMaxRetries(_backOff, uint64(t.maxRetries)), req.Context())
	backOff.Reset()

	for {
		resp, err := t.next.Do(req)
		if !t.retryable(resp, err) {
			return resp, err
		}

		wait := backOff.NextBackOff()
		if wait == backoff.Stop {
			return resp, err
		}
		drainBody(resp)

		timer := time.NewTimer(wait)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}

		if err = rewindBody(req); err != nil {
			return nil, err
		}
	}
}

func (t *retryTransport) retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && slices.Contains(t.statusCodes, resp.StatusCode)
}

func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func rewindBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if req.GetBody == nil {
		return ErrBodyNotRewindable
	}

	body, err := req.GetBody()
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}
