package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGithub Provider = "github"
)

// Principal is the resolved authenticated identity handed over by the
// external OAuth2/OIDC layer. The type is sealed: GooglePrincipal and
// GithubPrincipal are the only variants, so a new provider is a new
// variant here plus the matching branches in the identity service.
type Principal interface {
	Provider() Provider

	sealedPrincipal()
}

// GooglePrincipal carries the OIDC claims this system consumes.
type GooglePrincipal struct {
	Sub   string
	Name  string
	Email string
}

func (GooglePrincipal) Provider() Provider { return ProviderGoogle }
func (GooglePrincipal) sealedPrincipal()   {}

// GithubPrincipal carries the OAuth2 user attributes this system consumes.
type GithubPrincipal struct {
	Id    string
	Login string
	Email string
}

func (GithubPrincipal) Provider() Provider { return ProviderGithub }
func (GithubPrincipal) sealedPrincipal()   {}
