/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package configs

import (
	"io/fs"
	"time"
)

const (
	// Default config file
	DefaultConfigFile = "conf.yaml"
	//
	DefaultWorkspace = "/"
	//
	DefaultServicePort = 15001
	//
	DefaultIpfsApi = "http://127.0.0.1:5001"
	// seconds per block
	DefaultBlockTime = 6
	// blocks per session
	DefaultSessionPeriod = 10
	// minimum number of validators left after an automatic or manual removal
	DefaultMinAuthorities = 2
	// number of unproductive eras tolerated before a validator is evicted
	DefaultMaxDeadSession = 3
	// Ss58 network prefix used to display accounts
	Ss58Prefix = 42
)

const (
	// RequestTimeout bounds every request sent to the storage node
	RequestTimeout = 5 * time.Second
	// HousekeepingInterval is the number of blocks between two bootstrap connection checks
	HousekeepingInterval = 5
	// MetadataInterval is the number of blocks between two peer count reports
	MetadataInterval = 5
	// TxPoolSize is the capacity of the local transaction pool
	TxPoolSize = 1024
	// OffchainQueueSize is the number of blocks whose offchain work may wait for the worker
	OffchainQueueSize = 64
	// UnsignedLongevity is the number of blocks an unsigned transaction stays valid
	UnsignedLongevity = 5
	// UnsignedTagPrefix tags every unsigned transaction accepted by the session pallet
	UnsignedTagPrefix = "iris"
)

const (
	DirMode  fs.FileMode = 0755
	FileMode fs.FileMode = 0644
)

const (
	DbDir       = "db"
	OffchainDir = "offchain"
	LogDir      = "log"
)
