package presentation

const (
	IDParam       = "id"
	UploadIDParam = "upload_id"
	IndexParam    = "index"
	TypeKey       = "Content-Type"
	ReasonTag     = "X-Reason"

	// PrincipalKey is the echo context key the auth middleware stores the
	// resolved principal under.
	PrincipalKey = "principal"

	// Trusted headers set by the upstream auth proxy.
	ProviderHeader = "X-Auth-Provider"
	UserIDHeader   = "X-Auth-Id"
	UsernameHeader = "X-Auth-Name"
)
