package services

import (
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

type ServiceHTTP struct {
	doer    heimdall.Doer
	timeout time.Duration
}

func (service *ServiceHTTP) httpClient(retry int) *httpclient.Client {
	opts := []httpclient.Option{
		httpclient.WithRetryCount(retry),
	}
	if service.timeout > 0 {
		opts = append(opts, httpclient.WithHTTPTimeout(service.timeout))
	}
	if service.doer != nil {
		opts = append(opts, httpclient.WithHTTPClient(service.doer))
	}
	return httpclient.NewClient(opts...)
}
