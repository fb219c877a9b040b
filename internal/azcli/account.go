// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"errors"
	"fmt"
)

// Account is the contract of `az account show`.
type Account struct {
	ID        string      `json:"id"` // the subscription id
	IsDefault bool        `json:"isDefault"`
	Name      string      `json:"name"`
	TenantID  string      `json:"tenantId"`
	User      AccountUser `json:"user"`
}

// AccountUser is the signed-in identity of an Account.
type AccountUser struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Account returns the currently selected subscription, or ErrNotLoggedIn when
// the CLI has no valid session.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	account := new(Account)
	if err := c.RunJSON(ctx, account, "account", "show"); err != nil {
		return nil, fmt.Errorf("azcli.Account: %w: %w", ErrNotLoggedIn, err)
	}
	if account.ID == "" {
		return nil, fmt.Errorf("azcli.Account: %w: az account show returned no subscription id", ErrNotLoggedIn)
	}
	return account, nil
}

// IsPrerequisiteError reports whether the error belongs to the
// missing-prerequisite category: CLI not installed or not logged in.
func IsPrerequisiteError(err error) bool {
	return errors.Is(err, ErrNotInstalled) || errors.Is(err, ErrNotLoggedIn)
}
