// Package email is a placeholder mail tool. It simulates sending, listing and
// reading email so the tool surface stays stable while a real provider
// integration is absent; no network calls are made.
package email

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jmallory/sandkit/internal/tools/models"
)

// SendRequest are the arguments for the send_email tool.
type SendRequest struct {
	To      string `json:"to" mapstructure:"to" jsonschema:"required,description=The recipient's email address"`
	Subject string `json:"subject" mapstructure:"subject" jsonschema:"required,description=The subject of the email"`
	Body    string `json:"body" mapstructure:"body" jsonschema:"required,description=The body content of the email"`
}

func (r SendRequest) Validate() error {
	if r.To == "" {
		return fmt.Errorf("to is required")
	}
	return nil
}

// ListRequest are the arguments for the list_emails tool.
type ListRequest struct {
	Query      string `json:"query,omitempty" mapstructure:"query" jsonschema:"description=Query string to filter emails"`
	MaxResults int    `json:"max_results,omitempty" mapstructure:"max_results" jsonschema:"description=Maximum number of emails to return (default 10)"`
}

// ReadRequest are the arguments for the read_email tool.
type ReadRequest struct {
	MessageID string `json:"message_id" mapstructure:"message_id" jsonschema:"required,description=The ID of the email to read"`
}

func (r ReadRequest) Validate() error {
	if r.MessageID == "" {
		return fmt.Errorf("message_id is required")
	}
	return nil
}

// Receipt is the payload of a simulated send.
type Receipt struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
}

// Summary is one simulated inbox entry.
type Summary struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
}

// Message is a simulated full email.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Sender  string `json:"sender"`
}

// Tool is the no-op email tool.
type Tool struct{}

// NewTool returns the email tool stub.
func NewTool() *Tool {
	return &Tool{}
}

// Send simulates sending an email.
func (t *Tool) Send(_ context.Context, req SendRequest) models.Result {
	logrus.WithField("to", req.To).Debug("simulating email send")
	return models.OkWithData(
		fmt.Sprintf("Simulated sending email to %s with subject '%s'.", req.To, req.Subject),
		Receipt{Status: "success", MessageID: "simulated_message_id"},
	)
}

// List simulates listing inbox messages.
func (t *Tool) List(_ context.Context, req ListRequest) models.Result {
	max := req.MaxResults
	if max <= 0 {
		max = 10
	}
	logrus.WithFields(logrus.Fields{"query": req.Query, "max_results": max}).Debug("simulating email list")

	inbox := []Summary{
		{ID: "sim_email_1", Snippet: "Hello world"},
		{ID: "sim_email_2", Snippet: "Another one"},
	}
	if max < len(inbox) {
		inbox = inbox[:max]
	}
	return models.OkWithData(fmt.Sprintf("Retrieved %d emails.", len(inbox)), inbox)
}

// Read simulates reading one email by ID.
func (t *Tool) Read(_ context.Context, req ReadRequest) models.Result {
	logrus.WithField("message_id", req.MessageID).Debug("simulating email read")
	return models.OkWithData(
		fmt.Sprintf("Retrieved email '%s'.", req.MessageID),
		Message{
			ID:      req.MessageID,
			Subject: "Test Email",
			Body:    "This is the body of the email.",
			Sender:  "test@example.com",
		},
	)
}
