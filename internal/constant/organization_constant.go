package constant

// Organization member roles.
const (
	MemberRoleOwner  = "owner"
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// Event codes published on the NATS bus and fanned out to websockets.
const (
	EventDocumentStatusChanged = "DOCUMENT_STATUS_CHANGED"
)
