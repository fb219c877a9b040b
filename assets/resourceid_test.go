// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteResourceID = "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/rg-appsvc/providers/Microsoft.Web/sites/webapp-1"

func TestNameFromResourceID(t *testing.T) {
	t.Parallel()
	name, err := NameFromResourceID(siteResourceID)
	require.NoError(t, err)
	assert.Equal(t, "webapp-1", name)

	_, err = NameFromResourceID("not-a-resource-id")
	assert.Error(t, err)
}

func TestResourceTypeFromResourceID(t *testing.T) {
	t.Parallel()
	typ, err := ResourceTypeFromResourceID(siteResourceID)
	require.NoError(t, err)
	assert.Equal(t, "Microsoft.Web/sites", typ)
}

func TestResourceGroupFromResourceID(t *testing.T) {
	t.Parallel()
	rg, err := ResourceGroupFromResourceID(siteResourceID)
	require.NoError(t, err)
	assert.Equal(t, "rg-appsvc", rg)
}
