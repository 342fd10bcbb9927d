package mailer

import "fmt"

// VerificationEmail returns the subject and body for the account
// activation code sent right after registration.
func VerificationEmail(otp int) (subject, html string) {
	subject = "OTP for Email Verification"
	html = fmt.Sprintf("<h1>Your OTP is %d. It expires in 15 minutes.</h1>", otp)
	return subject, html
}

// ResetEmail returns the subject and body for the password-reset code.
func ResetEmail(otp int) (subject, html string) {
	subject = "Password Reset OTP"
	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Forget Password OTP</title>
</head>
<body style="font-family: sans-serif; background-color: #f9f9f9; margin: 0; padding: 0;">
    <div style="max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
        <div style="background-color: #0056B3; color: #ffffff; padding: 20px; text-align: center; font-size: 24px;">
            Forget Password OTP
        </div>
        <div style="padding: 20px; text-align: center; color: #333333;">
            <p style="margin: 10px 0; line-height: 1.5;">Please enter this verification code.</p>
            <div style="font-size: 24px; font-weight: bold; color: #0056B3; margin: 20px 0;"><h1>%d</h1></div>
            <p style="margin: 10px 0; line-height: 1.5;">This code is valid for the next 15 minutes.</p>
            <div style="margin-top: 20px; font-size: 14px; color: #666666;">
                <p><i>Sira - Spot It, Report It &amp; Improve It.</i></p>
            </div>
        </div>
    </div>
</body>
</html>`, otp)
	return subject, html
}
