package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mysite/internal/db"
	"github.com/mysite/internal/mail"
)

const DefaultShareFrom = "admin@localhost.com"

// ShareService emails a post recommendation to a friend.
type ShareService struct {
	sender mail.Sender
	from   string
}

// NewShareService creates a ShareService sending from the given address.
func NewShareService(sender mail.Sender, from string) *ShareService {
	from = strings.TrimSpace(from)
	if from == "" {
		from = DefaultShareFrom
	}
	return &ShareService{sender: sender, from: from}
}

// Share validates form and sends the recommendation. A *ValidationError means
// no mail was attempted; delivery errors are returned as they are.
func (s *ShareService) Share(ctx context.Context, post *db.Post, form ShareForm, postURL string) error {
	if post == nil {
		return ErrPostNotFound
	}

	form = form.normalized()
	if err := validateForm(form); err != nil {
		return err
	}

	msg := ShareMessage(post, form, postURL)
	msg.From = s.from
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver share email: %w", err)
	}
	return nil
}

// ShareMessage formats the recommendation email for post.
func ShareMessage(post *db.Post, form ShareForm, postURL string) mail.Message {
	return mail.Message{
		To:      []string{form.To},
		Subject: fmt.Sprintf(`%s (%s) recommends you reading "%s"`, form.Name, form.Email, post.Title),
		Body:    fmt.Sprintf("Read \"%s\" at %s\n\n%s's comments: %s", post.Title, postURL, form.Name, form.Comments),
	}
}
