package model

// CustomerMessage is the rendered customer-facing message presenting a set of
// credit options: a short subject line, a message body, and call-to-action
// button labels.
type CustomerMessage struct {
	Subject    string
	Body       string
	CTAButtons []string
}
