/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

var (
	SSPrefix        = []byte{0x53, 0x53, 0x35, 0x38, 0x50, 0x52, 0x45}
	SubstratePrefix = []byte{0x2a}
)

// EncodeAccount renders a 32-byte public key as a substrate ss58 address.
func EncodeAccount(publicKey []byte) (string, error) {
	if len(publicKey) != 32 {
		return "", errors.New("public key length is not equal 32")
	}
	payload := appendBytes(SubstratePrefix, publicKey)
	input := appendBytes(SSPrefix, payload)
	ck := blake2b.Sum512(input)
	address := base58.Encode(appendBytes(payload, ck[:2]))
	if address == "" {
		return address, errors.New("base58 encode error")
	}
	return address, nil
}

// DecodeAccount parses a substrate ss58 address into an account id.
func DecodeAccount(address string) (types.AccountID, error) {
	var acc types.AccountID
	if err := VerityAddress(address, SubstratePrefix); err != nil {
		return acc, errors.Wrapf(err, "invalid address %s", address)
	}
	data := base58.Decode(address)
	copy(acc[:], data[len(SubstratePrefix):len(data)-2])
	return acc, nil
}

// AccountString never fails: an unencodable key falls back to hex.
func AccountString(acc types.AccountID) string {
	s, err := EncodeAccount(acc[:])
	if err != nil {
		return acc.ToHexString()
	}
	return s
}

func appendBytes(data1, data2 []byte) []byte {
	out := make([]byte, 0, len(data1)+len(data2))
	out = append(out, data1...)
	return append(out, data2...)
}

func VerityAddress(address string, prefix []byte) error {
	decodeBytes := base58.Decode(address)
	if len(decodeBytes) != (34 + len(prefix)) {
		return errors.New("base58 decode error")
	}
	if decodeBytes[0] != prefix[0] {
		return errors.New("prefix valid error")
	}
	pub := decodeBytes[len(prefix) : len(decodeBytes)-2]

	input := appendBytes(SSPrefix, appendBytes(prefix, pub))
	ck := blake2b.Sum512(input)
	for i := 0; i < 2; i++ {
		if ck[i] != decodeBytes[32+len(prefix)+i] {
			return errors.New("checksum valid error")
		}
	}
	return nil
}
