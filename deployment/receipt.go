// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package deployment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Azure/appsvclib/internal/environment"
)

// receiptFileName is the receipt of the last deployment, under the library base dir.
const receiptFileName = "last-deployment.json"

// ErrNoReceipt is returned when no deployment receipt has been written yet.
var ErrNoReceipt = errors.New("no deployment receipt found")

// Receipt is the local JSON record of the last deployment.
type Receipt struct {
	ResourceGroup  string    `json:"resourceGroup"`
	WebAppName     string    `json:"webAppName"`
	WebAppURL      string    `json:"webAppUrl"`
	DeploymentName string    `json:"deploymentName"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewReceipt builds a Receipt from a deployment result using the template's
// named outputs.
func NewReceipt(result *Result, at time.Time) (*Receipt, error) {
	url, err := result.StringOutput(OutputWebAppURL)
	if err != nil {
		return nil, fmt.Errorf("deployment.NewReceipt: %w", err)
	}
	name, err := result.StringOutput(OutputWebAppName)
	if err != nil {
		return nil, fmt.Errorf("deployment.NewReceipt: %w", err)
	}
	rg, err := result.StringOutput(OutputResourceGroup)
	if err != nil {
		return nil, fmt.Errorf("deployment.NewReceipt: %w", err)
	}
	return &Receipt{
		ResourceGroup:  rg,
		WebAppName:     name,
		WebAppURL:      url,
		DeploymentName: result.DeploymentName,
		Timestamp:      at.UTC(),
	}, nil
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

// ReadReceipt reads the receipt of the last deployment.
func ReadReceipt() (*Receipt, error) {
	payload, err := os.ReadFile(filepath.Join(environment.AppSvcLibDir(), receiptFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoReceipt
		}
		return nil, fmt.Errorf("deployment.ReadReceipt: %w", err)
	}
	receipt := new(Receipt)
	if err := json.Unmarshal(payload, receipt); err != nil {
		return nil, fmt.Errorf("deployment.ReadReceipt: %w", err)
	}
	return receipt, nil
}
