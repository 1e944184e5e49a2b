package plantuml

import (
	"time"
)

type Option func(*Client)

// WithCommand replaces the engine command line. Engine flags are appended
// after args.
func WithCommand(name string, args ...string) Option {
	return func(c *Client) {
		c.command = name
		c.args = args
	}
}

func WithJava(path string) Option {
	return func(c *Client) {
		c.java = path
	}
}

func WithJar(path string) Option {
	return func(c *Client) {
		c.jar = path
	}
}

func WithGraphvizDot(path string) Option {
	return func(c *Client) {
		c.dot = path
	}
}

func WithFontPath(path string) Option {
	return func(c *Client) {
		c.fonts = path
	}
}

func WithCharset(charset string) Option {
	return func(c *Client) {
		c.charset = charset
	}
}

func WithIncludePath(path string) Option {
	return func(c *Client) {
		c.include = path
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithEnv(env ...string) Option {
	return func(c *Client) {
		c.env = append(c.env, env...)
	}
}
