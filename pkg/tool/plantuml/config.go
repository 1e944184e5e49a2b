package plantuml

type Option func(*Client)

func WithServerURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithFileSave lets plantuml-generate write diagrams to a local save_path.
func WithFileSave(enabled bool) Option {
	return func(c *Client) {
		c.save = enabled
	}
}
