package domain_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"todoapp/internal/core/domain"
)

func TestUserProviderIds(t *testing.T) {
	RegisterTestingT(t)

	user := domain.User{Email: "someone@example.com"}

	Expect(user.HasGoogleId()).To(BeFalse())
	Expect(user.HasGithubId()).To(BeFalse())

	user.GoogleId = "google-sub-1"
	Expect(user.HasGoogleId()).To(BeTrue())

	user.GithubId = "42"
	Expect(user.HasGithubId()).To(BeTrue())
}

func TestPrincipalProviders(t *testing.T) {
	RegisterTestingT(t)

	var google domain.Principal = domain.GooglePrincipal{Sub: "sub", Email: "a@b.com"}
	var github domain.Principal = domain.GithubPrincipal{Id: "42", Email: "a@b.com"}

	Expect(google.Provider()).To(Equal(domain.ProviderGoogle))
	Expect(github.Provider()).To(Equal(domain.ProviderGithub))
}
