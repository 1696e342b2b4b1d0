package auth

import (
	"fmt"
	"net/smtp"
	"os"

	"metaads-dashboard/config"
)

func SendLoginEmail(to string, token string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	link := fmt.Sprintf("%s/auth/verify?token=%s", config.APP_URL, token)
	subject := "Your sign-in link"
	body := fmt.Sprintf("Click the following link to sign in:\n\n%s\n\nThe link expires in 15 minutes.", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
}
