// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/appsvclib/internal/auth"
	"github.com/Azure/appsvclib/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/google/uuid"
)

// Built-in role definition ids, relative to the subscription scope.
const (
	roleDefinitionIDFmt = "/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s"

	// RoleContributor is the built-in Contributor role definition name.
	RoleContributor = "b24988ac-6180-42a0-ab88-20f7382dd24c"
	// RoleReader is the built-in Reader role definition name.
	RoleReader = "acdd72a7-3385-48ef-bd42-f606fba81ae7"
	// RoleWebsiteContributor is the built-in Website Contributor role definition name.
	RoleWebsiteContributor = "de139f84-1756-47ae-9be6-808fbbe84772"

	roleAssignmentExistsCode = "RoleAssignmentAlreadyExists"
)

// roleDefinitionNames maps the operator-facing role names to built-in role definition names.
var roleDefinitionNames = map[string]string{
	"contributor":         RoleContributor,
	"reader":              RoleReader,
	"website contributor": RoleWebsiteContributor,
}

// RoleAssigner grants a principal a role at subscription scope.
// The one call it makes must be idempotent: granting an already granted role
// reports success.
type RoleAssigner interface {
	EnsureRoleAssignment(ctx context.Context, scope, principalID, roleDefinitionID string) (string, error)
}

// ARMRoleAssigner assigns roles through the ARM authorization API.
type ARMRoleAssigner struct {
	client  *armauthorization.RoleAssignmentsClient
	newName func() string
}

var _ RoleAssigner = (*ARMRoleAssigner)(nil)

// NewARMRoleAssigner creates a role assigner for the supplied subscription,
// authenticating with the same session as the Azure CLI operations.
func NewARMRoleAssigner(subscriptionID string) (*ARMRoleAssigner, error) {
	cred, err := auth.NewCredential()
	if err != nil {
		return nil, fmt.Errorf("oidc.NewARMRoleAssigner: obtaining credential: %w", err)
	}
	client, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("oidc.NewARMRoleAssigner: creating client: %w", err)
	}
	return &ARMRoleAssigner{
		client:  client,
		newName: func() string { return uuid.New().String() },
	}, nil
}

// EnsureRoleAssignment creates the role assignment and returns its name.
// Role assignment names must be GUIDs; a fresh one is generated per attempt.
// An already-exists response from ARM is success.
func (a *ARMRoleAssigner) EnsureRoleAssignment(ctx context.Context, scope, principalID, roleDefinitionID string) (string, error) {
	name := a.newName()
	params := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(principalID),
			RoleDefinitionID: to.Ptr(roleDefinitionID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
		},
	}
	resp, err := a.client.Create(ctx, scope, name, params, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == roleAssignmentExistsCode {
			return name, nil
		}
		return "", fmt.Errorf("ARMRoleAssigner.EnsureRoleAssignment: %w", err)
	}
	return to.ValOrZero(resp.Name), nil
}

// roleDefinitionID resolves an operator-facing role name to its full
// subscription scope role definition id.
func roleDefinitionID(subscriptionID, roleName string) (string, error) {
	n, ok := roleDefinitionNames[normalizeRoleName(roleName)]
	if !ok {
		return "", fmt.Errorf("oidc.roleDefinitionID: unknown role %q", roleName)
	}
	return fmt.Sprintf(roleDefinitionIDFmt, subscriptionID, n), nil
}

func normalizeRoleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
