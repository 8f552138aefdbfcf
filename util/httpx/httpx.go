package httpx

import (
	"net"
	"net/http"
	"time"
)

// The only outbound traffic is the payment gateway, so the pool is sized
// for a single host and the timeout covers the gateway's worst-case
// intent creation latency.
var gatewayClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxConnsPerHost:     20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Client returns the shared client used by gateway calls.
func Client() *http.Client { return gatewayClient }
