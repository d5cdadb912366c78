// Package imap fetches unseen PDF attachments from the monitored inbox.
package imap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

type Config struct {
	Addr     string // host:port, TLS
	Username string
	Password string
	Mailbox  string // empty -> INBOX
}

type Client struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, logger: logger}
}

// FetchUnseen connects, pulls every unseen message and returns their PDF
// attachments. Reading the body sections marks the messages seen, so the
// next poll only sees new mail. A single malformed message is logged and
// skipped, not fatal for the poll cycle.
func (c *Client) FetchUnseen(_ context.Context) ([]domain.Attachment, error) {
	conn, err := client.DialTLS(c.cfg.Addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial imap: %w", err)
	}
	defer conn.Logout()

	if err := conn.Login(c.cfg.Username, c.cfg.Password); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}
	if _, err := conn.Select(c.cfg.Mailbox, false); err != nil {
		return nil, fmt.Errorf("select mailbox %q: %w", c.cfg.Mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	seqNums, err := conn.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("search unseen: %w", err)
	}
	if len(seqNums) == 0 {
		return nil, nil
	}
	c.logger.Info("unseen messages found", "count", len(seqNums))

	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)
	section := &imap.BodySectionName{}

	messages := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- conn.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var attachments []domain.Attachment
	for msg := range messages {
		atts, err := pdfAttachments(msg, section)
		if err != nil {
			c.logger.Warn("skipping unreadable message", "seq", msg.SeqNum, "error", err)
			continue
		}
		attachments = append(attachments, atts...)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}
	return attachments, nil
}

func pdfAttachments(msg *imap.Message, section *imap.BodySectionName) ([]domain.Attachment, error) {
	body := msg.GetBody(section)
	if body == nil {
		return nil, errors.New("server returned no body section")
	}

	mr, err := mail.CreateReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	var sender string
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		sender = addrs[0].Address
	}
	subject, _ := mr.Header.Subject()

	var attachments []domain.Attachment
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return attachments, fmt.Errorf("read message part: %w", err)
		}

		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, _ := header.Filename()
		contentType, _, _ := header.ContentType()
		if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			return attachments, fmt.Errorf("read attachment body: %w", err)
		}
		if filename == "" {
			filename = "unknown.pdf"
		}
		attachments = append(attachments, domain.Attachment{
			Sender:   sender,
			Subject:  subject,
			Filename: filename,
			Data:     data,
		})
	}
	return attachments, nil
}
