package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MarcGrol/delivecrous/lib/mylog"
)

const (
	timeout = 5 * time.Second
)

type httpClient struct {
	client *http.Client
	logger mylog.Logger
}

func newHTTPClient() HTTPSender {
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: mylog.New("httpclient"),
	}
}

func (s *httpClient) Send(c context.Context, method string, url string, body []byte) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(c, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s %s: %s", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	s.logger.Log(c, "", mylog.SeverityDebug, "HTTP request: %s %s", method, url)

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error sending %s %s: %s", method, url, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error reading response %s %s: %s", method, url, err)
	}

	s.logger.Log(c, "", mylog.SeverityDebug, "HTTP response: %s %s -> %d", method, url, httpResp.StatusCode)

	return httpResp.StatusCode, respPayload, nil
}
