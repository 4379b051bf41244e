/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package configs

const (
	// Name is the name of the program
	Name = "iris"
	// Version of the program
	Version = "v0.1.0"
	// Description is the description of the program
	Description = "Validator and storage provider session node for the Iris network"
)
