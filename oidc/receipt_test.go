// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptSaveAndRead(t *testing.T) {
	t.Setenv("APPSVCLIB_DIR", t.TempDir())

	result := &Result{
		ClientID:       testAppID,
		TenantID:       testTenantID,
		SubscriptionID: testSubscriptionID,
		Repository:     "acme/widgets",
	}
	in := NewReceipt(result)
	require.NoError(t, in.Save())

	out, err := ReadReceipt()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadReceiptNotFound(t *testing.T) {
	t.Setenv("APPSVCLIB_DIR", t.TempDir())

	_, err := ReadReceipt()
	assert.ErrorIs(t, err, ErrNoReceipt)
}
