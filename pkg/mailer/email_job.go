package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is the plain body; HTML is optional.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the transactional mail sent after user registration.
func WelcomeEmail(to, username string) EmailJob {
	name := username
	if name == "" {
		name = "there"
	}
	return EmailJob{
		To:      to,
		Subject: "Welcome aboard",
		Text:    "Hi " + name + ",\n\nYour account has been created. You can manage your profile and addresses via the API.\n",
	}
}
