package mail

import "fmt"

func VerificationEmail(appURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/verify?token=%s", appURL, token)
	return "Verify your StaffMS account",
		fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
}

func PasswordResetEmail(appURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", appURL, token)
	return "Reset your StaffMS password",
		fmt.Sprintf("Use the link below to choose a new password. It expires in one hour.\n\n%s", link)
}

func InvitationEmail(appURL, orgName, token string) (subject, body string) {
	link := fmt.Sprintf("%s/onboarding?token=%s", appURL, token)
	return fmt.Sprintf("You have been invited to %s on StaffMS", orgName),
		fmt.Sprintf("%s has added you to their StaffMS workspace.\n\nSet your password to get started:\n\n%s", orgName, link)
}
