package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, f.err
}

func TestSESSendBuildsInput(t *testing.T) {
	fake := &fakeSES{}
	mailer := &SES{client: fake, sender: "noreply@food.example.com"}

	err := mailer.Send(context.Background(), VerificationEmail("buyer@example.com", "123456"))
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "noreply@food.example.com", aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"buyer@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Verify your email", aws.ToString(fake.input.Message.Subject.Data))
	assert.Contains(t, aws.ToString(fake.input.Message.Body.Text.Data), "123456")
}

func TestSESSendPropagatesFailure(t *testing.T) {
	mailer := &SES{client: &fakeSES{err: errors.New("throttled")}, sender: "noreply@food.example.com"}

	err := mailer.Send(context.Background(), WelcomeEmail("buyer@example.com", "Asha"))
	assert.ErrorContains(t, err, "throttled")

	assert.Error(t, mailer.Send(context.Background(), Message{Subject: "no recipient"}))
}

func TestTemplatesEscapeHTML(t *testing.T) {
	msg := WelcomeEmail("a@example.com", "<script>")
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.TextBody, "<script>")

	reset := PasswordResetEmail("a@example.com", "https://food.example.com/resetpassword/abc")
	assert.Contains(t, reset.HTMLBody, `href="https://food.example.com/resetpassword/abc"`)
}
