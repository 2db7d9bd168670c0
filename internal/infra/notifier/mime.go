package notifier

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"notify-svc/internal/domain/entity"
)

// base64LineLength is the RFC 2045 line limit for base64 bodies.
const base64LineLength = 76

// decodeAttachments checks and decodes every attachment up front so a bad
// one is rejected before any connection is made.
func decodeAttachments(atts []entity.Attachment) ([][]byte, error) {
	decoded := make([][]byte, len(atts))
	for i, a := range atts {
		if a.Filename == "" || a.Content == "" {
			return nil, entity.BadRequest("attachment %d: filename and content are required", i)
		}
		data, err := a.Decode()
		if err != nil {
			return nil, entity.BadRequest("attachment %q: content is not valid base64", a.Filename)
		}
		decoded[i] = data
	}
	return decoded, nil
}

// buildMessage renders an RFC 5322 multipart/mixed message.
func buildMessage(cfg EmailConfig, msg *entity.Message, now time.Time) ([]byte, error) {
	decoded, err := decodeAttachments(msg.Attachments)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := [][2]string{
		{"From", cfg.FromAddr},
		{"To", strings.Join(cfg.ToAddrs, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Title)},
		{"Date", now.Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), cfg.Server)},
		{"MIME-Version", "1.0"},
		{"Content-Type", mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mw.Boundary()})},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(body)
	if _, err := qp.Write([]byte(msg.Content)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	for i, a := range msg.Attachments {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType("application/octet-stream", map[string]string{"name": a.Filename})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64Lines(part, decoded[i]); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 0 {
		n := min(base64LineLength, len(enc))
		if _, err := w.Write([]byte(enc[:n] + "\r\n")); err != nil {
			return err
		}
		enc = enc[n:]
	}
	return nil
}
