package ports

import "context"

// VerificationEmail is one queued verification message.
type VerificationEmail struct {
	To    string
	Name  string
	Token string
}

// VerificationMailer delivers a verification email synchronously. The SMTP
// implementation lives in internal/infrastructure/email.
type VerificationMailer interface {
	SendVerification(ctx context.Context, msg VerificationEmail) error
}

// VerificationSender enqueues a verification email for asynchronous delivery.
// Registration must not fail because the mail relay is down.
type VerificationSender interface {
	Enqueue(msg VerificationEmail)
}

// VerificationStore records one-time consumption of verification link tokens.
// Consume returns false when the token was already redeemed.
type VerificationStore interface {
	Consume(ctx context.Context, linkToken string) (bool, error)
}
