package models

// AttachmentRole tags a binary artifact with its purpose. Each role maps
// to its own upload endpoint and multipart field name; re-uploading a
// role replaces the previous artifact.
type AttachmentRole string

const (
	RolePhoto       AttachmentRole = "photo"
	RoleSignature   AttachmentRole = "signature"
	RoleCertificate AttachmentRole = "certificate"
)

// Attachment is a pending binary artifact of a submission draft.
type Attachment struct {
	Role     AttachmentRole
	Filename string
	Data     []byte
}
