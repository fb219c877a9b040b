// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// GitHubIssuer is the OIDC issuer for GitHub Actions tokens.
	GitHubIssuer = "https://token.actions.githubusercontent.com"
	// Audience is the token exchange audience expected by Entra.
	Audience = "api://AzureADTokenExchange"
)

// BranchSubject returns the federated credential subject for pushes to a branch.
func BranchSubject(organization, repository, branch string) string {
	return fmt.Sprintf("repo:%s/%s:ref:refs/heads/%s", organization, repository, branch)
}

// PullRequestSubject returns the federated credential subject for pull request events.
func PullRequestSubject(organization, repository string) string {
	return fmt.Sprintf("repo:%s/%s:pull_request", organization, repository)
}

// desiredSubjects is the full trust surface registered for a repository:
// exactly the branch ref subject and the pull request subject.
func desiredSubjects(organization, repository, branch string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(
		BranchSubject(organization, repository, branch),
		PullRequestSubject(organization, repository),
	)
}

// missingSubjects returns the desired subjects that are not yet registered.
func missingSubjects(desired mapset.Set[string], existing []federatedCredential) mapset.Set[string] {
	current := mapset.NewThreadUnsafeSet[string]()
	for _, fc := range existing {
		current.Add(fc.Subject)
	}
	return desired.Difference(current)
}

// credentialName derives the federated credential name from its subject.
// "repo:org/repo:pull_request" becomes "github-pull-request" and
// "repo:org/repo:ref:refs/heads/main" becomes "github-branch-main".
func credentialName(subject string) string {
	if strings.HasSuffix(subject, ":pull_request") {
		return "github-pull-request"
	}
	return "github-branch-" + subject[strings.LastIndex(subject, "/")+1:]
}
