package notifier

import (
	"errors"
	"net/smtp"
)

// plainAuth implements AUTH PLAIN (RFC 4616). Unlike smtp.PlainAuth it also
// sends credentials over unencrypted sessions to remote hosts.
type plainAuth struct {
	username string
	password string
}

func newPlainAuth(username, password string) smtp.Auth {
	return &plainAuth{username: username, password: password}
}

func (a *plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	resp := []byte("\x00" + a.username + "\x00" + a.password)
	return "PLAIN", resp, nil
}

func (a *plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}
