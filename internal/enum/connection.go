package enum

type ConnectionStatus string

const (
	ConnectionActive    ConnectionStatus = "active"
	ConnectionNotActive ConnectionStatus = "not_active"
)

func (c ConnectionStatus) String() string {
	return string(c)
}

type EmailProvider string

const (
	// ProviderIMAP is the generic IMAP integration configured through the wizard.
	ProviderIMAP EmailProvider = "imap_email"
)

func (p EmailProvider) String() string {
	return string(p)
}
