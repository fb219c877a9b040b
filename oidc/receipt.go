// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/appsvclib/internal/environment"
)

// receiptFileName is the receipt of the last OIDC setup, under the library base dir.
const receiptFileName = "oidc-setup.json"

// ErrNoReceipt is returned when no OIDC receipt has been written yet.
var ErrNoReceipt = errors.New("no oidc setup receipt found")

// Receipt is the local JSON record of the last OIDC setup.
type Receipt struct {
	ClientID       string `json:"clientId"`
	TenantID       string `json:"tenantId"`
	SubscriptionID string `json:"subscriptionId"`
	Repository     string `json:"repository"`
}

// NewReceipt builds a Receipt from a setup result.
func NewReceipt(result *Result) *Receipt {
	return &Receipt{
		ClientID:       result.ClientID,
		TenantID:       result.TenantID,
		SubscriptionID: result.SubscriptionID,
		Repository:     result.Repository,
	}
}

// Save writes the receipt to the library base dir.
func (r *Receipt) Save() error {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("Receipt.Save: %w", err)
	}
	dir := environment.AppSvcLibDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Receipt.Save: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, receiptFileName), payload, 0o644); err != nil {
		return fmt.Errorf("Receipt.Save: %w", err)
	}
	return nil
}

// ReadReceipt reads the receipt of the last OIDC setup.
func ReadReceipt() (*Receipt, error) {
	payload, err := os.ReadFile(filepath.Join(environment.AppSvcLibDir(), receiptFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoReceipt
		}
		return nil, fmt.Errorf("oidc.ReadReceipt: %w", err)
	}
	receipt := new(Receipt)
	if err := json.Unmarshal(payload, receipt); err != nil {
		return nil, fmt.Errorf("oidc.ReadReceipt: %w", err)
	}
	return receipt, nil
}
