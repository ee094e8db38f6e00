package mailer

import "time"

// JobLoginNotification is the only job kind the worker currently renders.
const JobLoginNotification = "login_notification"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Kind selects the template the worker renders; Subject/Text override it
// when set.
type EmailJob struct {
	To       string    `json:"to"`
	Kind     string    `json:"kind,omitempty"`
	Subject  string    `json:"subject,omitempty"`
	Text     string    `json:"text,omitempty"`
	Username string    `json:"username,omitempty"`
	IP       string    `json:"ip,omitempty"`
	At       time.Time `json:"at,omitempty"`
}
