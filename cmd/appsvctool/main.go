// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import "github.com/Azure/appsvclib/cmd/appsvctool/command"

func main() {
	command.Execute()
}
