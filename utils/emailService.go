package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func sendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping email to", toEmail)
		return nil
	}

	from := mail.NewEmail("Course Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Email to %s rejected, code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("email rejected, code: %d", resp.StatusCode)
	}

	log.Println("Email sent successfully to", toEmail)
	return nil
}

// SendEnrollmentEmail notifies a student that their purchase completed and
// the course is unlocked. Fired in a goroutine by the caller; a failed email
// never rolls back an enrollment.
func SendEnrollmentEmail(email, userName, courseTitle string) {
	subject := "Course Enrollment Confirmation"
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your payment was received and you are now enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">You can now access all the course content and track your progress from your enrollments page.</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, userName, courseTitle)

	go sendEmail(userName, email, subject, body)
}
