/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package chain

import (
	"github.com/CESSProject/iris-node/configs"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/pkg/errors"
	"github.com/vedhavyas/go-subkey/v2/sr25519"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoLocalAccount   = errors.New("no local account available")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signer builds extrinsics for the local account and pushes them into a pool.
type Signer struct {
	keyring  signature.KeyringPair
	canSign  bool
	pool     *Pool
	validate UnsignedValidator
}

// NewSigner returns a signer for mnemonic. An empty mnemonic yields a signer
// that can only submit unsigned extrinsics.
func NewSigner(mnemonic string, pool *Pool, validate UnsignedValidator) (*Signer, error) {
	s := &Signer{pool: pool, validate: validate}
	if mnemonic == "" {
		return s, nil
	}
	kr, err := signature.KeyringPairFromSecret(mnemonic, configs.Ss58Prefix)
	if err != nil {
		return nil, errors.Wrap(err, "[KeyringPairFromSecret]")
	}
	s.keyring = kr
	s.canSign = true
	return s, nil
}

func (s *Signer) CanSign() bool {
	return s.canSign
}

func (s *Signer) Account() (types.AccountID, bool) {
	var acc types.AccountID
	if !s.canSign {
		return acc, false
	}
	copy(acc[:], s.keyring.PublicKey)
	return acc, true
}

// SubmitSigned signs call with the local account and queues it.
func (s *Signer) SubmitSigned(block uint32, call Call) error {
	acc, ok := s.Account()
	if !ok {
		return ErrNoLocalAccount
	}
	payload, err := Payload(call)
	if err != nil {
		return err
	}
	sig, err := signature.Sign(payload, s.keyring.URI)
	if err != nil {
		return errors.Wrap(err, "[Sign]")
	}
	return s.pool.Push(Extrinsic{
		Signer:    &acc,
		Signature: sig,
		Call:      call,
		Block:     block,
	})
}

// SubmitUnsigned queues call after it passed unsigned validation.
func (s *Signer) SubmitUnsigned(block uint32, call Call) error {
	if s.validate == nil {
		return errors.New("unsigned transactions are not accepted")
	}
	valid, err := s.validate(call)
	if err != nil {
		return err
	}
	return s.pool.Push(Extrinsic{
		Call:      call,
		Block:     block,
		Longevity: valid.Longevity,
	})
}

// Payload is the byte string a signer commits to: the call name followed by
// the SCALE encoding of the call.
func Payload(call Call) ([]byte, error) {
	enc, err := codec.Encode(call)
	if err != nil {
		return nil, errors.Wrap(err, "[Encode]")
	}
	return append([]byte(call.CallName()), enc...), nil
}

// Verify checks the signature of a signed extrinsic. Unsigned extrinsics
// always pass.
func Verify(x Extrinsic) error {
	if x.Signer == nil {
		return nil
	}
	payload, err := Payload(x.Call)
	if err != nil {
		return err
	}
	if len(payload) > 256 {
		h := blake2b.Sum256(payload)
		payload = h[:]
	}
	pub, err := sr25519.Scheme{}.FromPublicKey(x.Signer[:])
	if err != nil {
		return errors.Wrap(err, "[FromPublicKey]")
	}
	if !pub.Verify(payload, x.Signature) {
		return ErrInvalidSignature
	}
	return nil
}
