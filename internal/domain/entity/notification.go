package entity

import (
	"encoding/base64"
	"strings"
)

// Attachment is a transient file carried by a notification.
// Content is base64 encoded. Backup marks it for the attachment archive.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Backup   bool   `json:"backup,omitempty"`
}

// Decode returns the raw attachment bytes. Line breaks and blanks inside
// the base64 text are ignored.
func (a Attachment) Decode() ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', ' ', '\t':
			return -1
		}
		return r
	}, a.Content)
	return base64.StdEncoding.DecodeString(cleaned)
}

// Message is the payload handed to a delivery channel.
type Message struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Validate checks the fields required before any I/O happens.
func (m *Message) Validate() error {
	if m == nil || m.Title == "" || m.Content == "" {
		return MissingAttribute("Required attributes: title and content")
	}
	return nil
}

// BackupAttachments returns the attachments flagged for archiving, in order.
func (m *Message) BackupAttachments() []Attachment {
	var out []Attachment
	for _, a := range m.Attachments {
		if a.Backup {
			out = append(out, a)
		}
	}
	return out
}

// ArchiveRecord is one entry of the append-only notification archive.
// Time is epoch seconds at the send attempt.
type ArchiveRecord struct {
	ID         int64  `json:"id"`
	Time       int64  `json:"time"`
	Topic      string `json:"topic"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	SendFailed bool   `json:"send_failed"`
}

// TimeRange bounds a history query. Both ends are inclusive epoch seconds.
type TimeRange struct {
	From *int64
	To   *int64
}

// IsZero reports whether neither bound is set.
func (r TimeRange) IsZero() bool {
	return r.From == nil && r.To == nil
}
