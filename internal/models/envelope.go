package models

import "time"

// MessageEnvelope is a transient read projection of one message in the
// selected folder. It is never persisted.
//
// SeqNum is the server-assigned position within the folder at the time of the
// connection. Servers renumber after expunges, so it must not be stored as a
// durable identifier across sessions.
type MessageEnvelope struct {
	SeqNum      uint32     `json:"id"`
	FromName    string     `json:"fromName"`
	FromAddress string     `json:"fromAddress"`
	ToAddress   string     `json:"toAddress"`
	Subject     string     `json:"subject"`
	Date        *time.Time `json:"date"`
	Read        bool       `json:"read"`
	Starred     bool       `json:"starred"`
	HasHTML     bool       `json:"hasHtml"`
	BodyText    string     `json:"bodyText,omitempty"`
}

// DecodedContent holds the decoded bodies of a single message, derived fresh
// from the raw transfer-encoded bytes on every request.
type DecodedContent struct {
	HTMLBody string `json:"htmlBody,omitempty"`
	TextBody string `json:"textBody,omitempty"`
	HasHTML  bool   `json:"hasHtml"`
}
