package domain

// SipAccount is a provisioned SIP peer the softphone logs in as. Secret is
// either the plaintext SIP secret or a bcrypt hash for dedicated softphone
// accounts.
type SipAccount struct {
	ID        int64  `json:"id"`
	Extension string `json:"extension"`
	Secret    string `json:"-"`
	Disabled  bool   `json:"disabled"`
}

// Extension types as provisioned by the PBX.
const (
	ExtensionTypeSIP      = "SIP"
	ExtensionTypeExternal = "EXTERNAL"
)
