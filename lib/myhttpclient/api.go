package myhttpclient

import (
	"context"
)

var New = newHTTPClient

type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}
