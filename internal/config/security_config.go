package config

type SecurityConfig interface {
	GetRoleClientID() string
	GetOIDCIssuer() string
	GetStorageSecret() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetRoleClientID names the resource_access entry that carries the user's roles.
func (Security) GetRoleClientID() string {
	return GetEnv("CRM_ROLE_CLIENT", "artax-client")
}

// GetOIDCIssuer enables signature verification of login tokens when set.
func (Security) GetOIDCIssuer() string {
	return GetEnv("CRM_OIDC_ISSUER", "")
}

// GetStorageSecret enables sealing of the local store when set.
func (Security) GetStorageSecret() string {
	return GetEnv("CRM_STORAGE_SECRET", "")
}
