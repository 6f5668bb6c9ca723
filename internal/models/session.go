package models

// Role identifies which side of the platform the signed-in account is on.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// Session holds the signed-in account state the client carries between
// screens: the API token, the account role and its role-scoped id, and
// a cached documents-uploaded flag. The flag is a hint for feature
// gating only; the next server fetch is always authoritative.
type Session struct {
	Token             string
	Role              Role
	ActorID           string
	DocumentsUploaded bool
}

// IsValid reports whether the session is usable for API calls.
func (s Session) IsValid() bool {
	return s.Token != "" && s.Role != "" && s.ActorID != ""
}

// Environment represents the API environment.
type Environment string

const (
	EnvProduction  Environment = "production"
	EnvStaging     Environment = "staging"
	EnvDevelopment Environment = "development"
)

// BaseURL returns the API base URL for the environment.
func (e Environment) BaseURL() string {
	switch e {
	case EnvStaging:
		return "https://api.staging.mealbridge.org/api"
	case EnvDevelopment:
		return "http://localhost:8080/api"
	default:
		return "https://api.mealbridge.org/api"
	}
}
