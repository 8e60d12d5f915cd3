package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	httpclient "github.com/caiflower/rest-client/pkg/http"
	"github.com/caiflower/rest-client/pkg/http/hooks"
	"github.com/caiflower/rest-client/pkg/logger"
)

// userAgentHook is the built-in hook, it runs before any registered listener
type userAgentHook struct {
	httpclient.NopHook
}

func (userAgentHook) BeforeRequest(req *http.Request) (*http.Request, error) {
	req.Header.Set("User-Agent", "rest-client-example/1.0")
	return req, nil
}

func main() {
	configFile := flag.String("config", "example/restclient/config.yaml", "transport config file")
	baseURL := flag.String("base", "https://example.com", "base url")
	flag.Parse()

	err := run(*configFile, *baseURL)
	logger.DefaultLogger().Close()
	if err != nil {
		fmt.Printf("-----failed: %v-----\n", err)
		os.Exit(1)
	}
}

func run(configFile, baseURL string) error {
	config, err := httpclient.LoadConfig(configFile)
	if err != nil {
		logger.Warn("load config %s failed, use default. err: %v", configFile, err)
		config = httpclient.Config{}
	}

	c, err := httpclient.New(baseURL,
		httpclient.WithHook(userAgentHook{}),
		httpclient.WithTransport(httpclient.NewTransport(config)),
	)
	if err != nil {
		return err
	}

	logging := hooks.Logging(logger.DefaultLogger())
	decompress := hooks.Decompress()
	c.On(httpclient.ChannelBefore, hooks.RequestID(hooks.RequestIDHeader)).
		On(httpclient.ChannelBefore, decompress).
		On(httpclient.ChannelBefore, logging).
		On(httpclient.ChannelAfter, decompress).
		On(httpclient.ChannelAfter, logging).
		On(httpclient.ChannelAfter, hooks.RaiseForStatus(http.StatusBadRequest))

	var client httpclient.RestClient = c
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return err
	}
	fmt.Printf("-----status=%v-----\n%s\n", resp.Status, body)
	return nil
}
