package server

import (
	"net/http"
	"time"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client.HTTPClient = client
	}
}

func WithRetries(retries int) Option {
	return func(c *Client) {
		c.client.RetryMax = retries
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.client.RetryWaitMin = min
		c.client.RetryWaitMax = max
	}
}
