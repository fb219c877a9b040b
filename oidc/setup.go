// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Azure/appsvclib/internal/azcli"
	"golang.org/x/sync/errgroup"
)

// DefaultApplicationName is the display name used when none is supplied.
const DefaultApplicationName = "appsvc-github-oidc"

// Configurator sequences the OIDC setup calls.
type Configurator struct {
	cli         *azcli.Client
	newAssigner func(subscriptionID string) (RoleAssigner, error)
}

// NewConfigurator creates a Configurator over the supplied CLI client.
// Role assignments go through the ARM authorization API.
func NewConfigurator(cli *azcli.Client) *Configurator {
	return &Configurator{
		cli: cli,
		newAssigner: func(subscriptionID string) (RoleAssigner, error) {
			return NewARMRoleAssigner(subscriptionID)
		},
	}
}

// NewConfiguratorWithAssigner creates a Configurator with a custom role assigner.
func NewConfiguratorWithAssigner(cli *azcli.Client, assigner RoleAssigner) *Configurator {
	return &Configurator{
		cli: cli,
		newAssigner: func(string) (RoleAssigner, error) {
			return assigner, nil
		},
	}
}

// Request describes the repository and identity to federate.
type Request struct {
	Organization    string // the GitHub organization or user owning the repository
	Repository      string // the GitHub repository name
	ApplicationName string // the display name of the application identity, defaults to DefaultApplicationName
	Branch          string // the default branch, defaults to "main"
	Role            string // the subscription role granted to the identity, defaults to "Contributor"
}

func (r *Request) applyDefaults() error {
	if r.Organization == "" || r.Repository == "" {
		return fmt.Errorf("oidc: organization and repository are required")
	}
	if r.ApplicationName == "" {
		r.ApplicationName = DefaultApplicationName
	}
	if r.Branch == "" {
		r.Branch = "main"
	}
	if r.Role == "" {
		r.Role = "Contributor"
	}
	return nil
}

// Result reports the identifiers of the configured identity.
type Result struct {
	ClientID           string // the application (client) id used by the CI system
	ObjectID           string // the application object id
	ServicePrincipalID string // the service principal object id
	TenantID           string
	SubscriptionID     string
	Repository         string // "organization/repository"
	RoleAssignment     string
	CreatedSubjects    []string // the federated credential subjects registered by this run
	ExistingSubjects   []string // the subjects that were already registered
	ReusedApplication  bool
}

// adApplication is the contract of `az ad app create|list`.
type adApplication struct {
	AppID       string `json:"appId"`
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// servicePrincipal is the contract of `az ad sp create|list`.
type servicePrincipal struct {
	ID    string `json:"id"`
	AppID string `json:"appId"`
}

// federatedCredential is the contract of `az ad app federated-credential list|create`.
type federatedCredential struct {
	Name      string   `json:"name"`
	Issuer    string   `json:"issuer"`
	Subject   string   `json:"subject"`
	Audiences []string `json:"audiences"`
}

// Setup runs the full sequence: prerequisite check, application identity,
// service principal, role assignment, federated credentials, receipt.
// Every step is idempotent; rerunning reports the existing identifiers.
func (c *Configurator) Setup(ctx context.Context, req Request) (*Result, error) {
	if err := req.applyDefaults(); err != nil {
		return nil, err
	}
	account, err := c.cli.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("Configurator.Setup: prerequisite check failed: %w", err)
	}

	app, reused, err := c.ensureApplication(ctx, req.ApplicationName)
	if err != nil {
		return nil, err
	}
	sp, err := c.ensureServicePrincipal(ctx, app.AppID)
	if err != nil {
		return nil, err
	}

	assigner, err := c.newAssigner(account.ID)
	if err != nil {
		return nil, fmt.Errorf("Configurator.Setup: %w", err)
	}
	roleID, err := roleDefinitionID(account.ID, req.Role)
	if err != nil {
		return nil, fmt.Errorf("Configurator.Setup: %w", err)
	}
	assignment, err := assigner.EnsureRoleAssignment(ctx, "/subscriptions/"+account.ID, sp.ID, roleID)
	if err != nil {
		return nil, fmt.Errorf("Configurator.Setup: assigning role %s: %w", req.Role, err)
	}

	created, existing, err := c.reconcileFederatedCredentials(ctx, app.ID, req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ClientID:           app.AppID,
		ObjectID:           app.ID,
		ServicePrincipalID: sp.ID,
		TenantID:           account.TenantID,
		SubscriptionID:     account.ID,
		Repository:         req.Organization + "/" + req.Repository,
		RoleAssignment:     assignment,
		CreatedSubjects:    created,
		ExistingSubjects:   existing,
		ReusedApplication:  reused,
	}
	return result, nil
}

// ensureApplication returns the application identity with the supplied
// display name, creating it when absent.
func (c *Configurator) ensureApplication(ctx context.Context, displayName string) (*adApplication, bool, error) {
	var apps []adApplication
	err := c.cli.RunJSON(ctx, &apps, "ad", "app", "list", "--display-name", displayName)
	if err != nil {
		return nil, false, fmt.Errorf("Configurator.ensureApplication: listing applications: %w", err)
	}
	if len(apps) > 0 {
		return &apps[0], true, nil
	}
	app := new(adApplication)
	err = c.cli.RunJSON(ctx, app, "ad", "app", "create", "--display-name", displayName)
	if err != nil {
		return nil, false, fmt.Errorf("Configurator.ensureApplication: creating application %s: %w", displayName, err)
	}
	return app, false, nil
}

// ensureServicePrincipal returns the service principal for the application,
// creating it when absent.
func (c *Configurator) ensureServicePrincipal(ctx context.Context, appID string) (*servicePrincipal, error) {
	var sps []servicePrincipal
	filter := fmt.Sprintf("appId eq '%s'", appID)
	err := c.cli.RunJSON(ctx, &sps, "ad", "sp", "list", "--filter", filter)
	if err != nil {
		return nil, fmt.Errorf("Configurator.ensureServicePrincipal: listing service principals: %w", err)
	}
	if len(sps) > 0 {
		return &sps[0], nil
	}
	sp := new(servicePrincipal)
	err = c.cli.RunJSON(ctx, sp, "ad", "sp", "create", "--id", appID)
	if err != nil {
		return nil, fmt.Errorf("Configurator.ensureServicePrincipal: creating service principal for %s: %w", appID, err)
	}
	return sp, nil
}

// reconcileFederatedCredentials registers the missing trust subjects for the
// application. The desired set is exactly the branch ref and pull request
// subjects; subjects already registered are left untouched.
func (c *Configurator) reconcileFederatedCredentials(ctx context.Context, appObjectID string, req Request) (created, existing []string, err error) {
	var current []federatedCredential
	err = c.cli.RunJSON(ctx, &current, "ad", "app", "federated-credential", "list", "--id", appObjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("Configurator.reconcileFederatedCredentials: listing credentials: %w", err)
	}

	desired := desiredSubjects(req.Organization, req.Repository, req.Branch)
	missing := missingSubjects(desired, current)

	for _, fc := range current {
		if desired.Contains(fc.Subject) {
			existing = append(existing, fc.Subject)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, subject := range missing.ToSlice() {
		subject := subject
		eg.Go(func() error {
			return c.createFederatedCredential(egCtx, appObjectID, subject)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("Configurator.reconcileFederatedCredentials: %w", err)
	}

	created = missing.ToSlice()
	sort.Strings(created)
	sort.Strings(existing)
	return created, existing, nil
}

func (c *Configurator) createFederatedCredential(ctx context.Context, appObjectID, subject string) error {
	fc := federatedCredential{
		Name:      credentialName(subject),
		Issuer:    GitHubIssuer,
		Subject:   subject,
		Audiences: []string{Audience},
	}
	payload, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("Configurator.createFederatedCredential: %w", err)
	}
	err = c.cli.RunJSON(ctx, nil,
		"ad", "app", "federated-credential", "create",
		"--id", appObjectID,
		"--parameters", string(payload),
	)
	if err != nil {
		return fmt.Errorf("Configurator.createFederatedCredential: subject %s: %w", subject, err)
	}
	return nil
}
