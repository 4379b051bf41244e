/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package confile

import (
	"os"
	"path"
	"time"

	"github.com/CESSProject/iris-node/configs"
	"github.com/CESSProject/iris-node/pkg/utils"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const TempleteProfile = `app:
  # workspace
  workspace: "/"
  # local web api port
  port: 15001
  # seconds per block
  blocktime: 6
  # blocks per session
  sessionperiod: 10

chain:
  # signature account mnemonic, leave empty to run without signing
  mnemonic: ""
  # whether this node executes the validator side of the data pipeline
  validator: true

session:
  # minimum number of validators
  minauthorities: 2
  # eras a validator may miss before it is removed
  maxdeadsession: 3
  # genesis validators, ss58 addresses
  validators:
    - "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
    - "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"

ipfs:
  # storage node rpc api
  api: "http://127.0.0.1:5001"
  # request deadline in seconds
  timeout: 5
  # bootstrap multiaddrs registered at genesis
  bootstrap: []`

type Confiler interface {
	Parse(fpath string) error
	ReadWorkspace() string
	ReadServicePort() uint16
	ReadBlockTime() time.Duration
	ReadSessionPeriod() uint32
	ReadMnemonic() string
	ReadValidatorMode() bool
	ReadMinAuthorities() uint32
	ReadMaxDeadSession() uint32
	ReadGenesisValidators() []types.AccountID
	ReadIpfsApi() string
	ReadIpfsTimeout() time.Duration
	ReadBootstrap() []string
	ReadSignaturePublickey() []byte
	ReadSignatureAccount() string
}

type App struct {
	Workspace     string `name:"workspace" toml:"workspace" yaml:"workspace"`
	Port          uint16 `name:"port" toml:"port" yaml:"port"`
	BlockTime     uint32 `name:"blocktime" toml:"blocktime" yaml:"blocktime"`
	SessionPeriod uint32 `name:"sessionperiod" toml:"sessionperiod" yaml:"sessionperiod"`
}

type Chain struct {
	Mnemonic  string `name:"mnemonic" toml:"mnemonic" yaml:"mnemonic"`
	Validator bool   `name:"validator" toml:"validator" yaml:"validator"`
}

type Session struct {
	MinAuthorities uint32   `name:"minauthorities" toml:"minauthorities" yaml:"minauthorities"`
	MaxDeadSession uint32   `name:"maxdeadsession" toml:"maxdeadsession" yaml:"maxdeadsession"`
	Validators     []string `name:"validators" toml:"validators" yaml:"validators"`
}

type Ipfs struct {
	Api       string   `name:"api" toml:"api" yaml:"api"`
	Timeout   uint32   `name:"timeout" toml:"timeout" yaml:"timeout"`
	Bootstrap []string `name:"bootstrap" toml:"bootstrap" yaml:"bootstrap"`
}

type Confile struct {
	App     `yaml:"app" mapstructure:"app"`
	Chain   `yaml:"chain" mapstructure:"chain"`
	Session `yaml:"session" mapstructure:"session"`
	Ipfs    `yaml:"ipfs" mapstructure:"ipfs"`

	validators []types.AccountID
}

var _ Confiler = (*Confile)(nil)

func NewConfigFile() *Confile {
	return &Confile{}
}

func (c *Confile) Parse(fpath string) error {
	fstat, err := os.Stat(fpath)
	if err != nil {
		return err
	}
	if fstat.IsDir() {
		return errors.Errorf("The '%v' is not a file", fpath)
	}
	v := viper.New()
	v.SetConfigFile(fpath)
	v.SetConfigType(path.Ext(fpath)[1:])
	v.SetDefault("app.workspace", configs.DefaultWorkspace)
	v.SetDefault("app.port", configs.DefaultServicePort)
	v.SetDefault("app.blocktime", configs.DefaultBlockTime)
	v.SetDefault("app.sessionperiod", configs.DefaultSessionPeriod)
	v.SetDefault("chain.validator", true)
	v.SetDefault("session.minauthorities", configs.DefaultMinAuthorities)
	v.SetDefault("session.maxdeadsession", configs.DefaultMaxDeadSession)
	v.SetDefault("ipfs.api", configs.DefaultIpfsApi)
	v.SetDefault("ipfs.timeout", uint32(configs.RequestTimeout/time.Second))

	err = v.ReadInConfig()
	if err != nil {
		return errors.Errorf("[ReadInConfig] %v", err)
	}
	err = v.Unmarshal(c)
	if err != nil {
		return errors.Errorf("[Unmarshal] %v", err)
	}
	return c.check()
}

func (c *Confile) check() error {
	if c.Mnemonic != "" {
		if _, err := signature.KeyringPairFromSecret(c.Mnemonic, configs.Ss58Prefix); err != nil {
			return errors.Errorf("invalid mnemonic: %v", err)
		}
	}

	if c.Port < 1024 {
		return errors.Errorf("prohibit the use of system reserved port: %v", c.Port)
	}
	if c.BlockTime == 0 {
		return errors.New("'blocktime' must be greater than 0")
	}
	if c.SessionPeriod == 0 {
		return errors.New("'sessionperiod' must be greater than 0")
	}
	if c.MinAuthorities == 0 {
		return errors.New("'minauthorities' must be greater than 0")
	}
	if c.Api == "" {
		return errors.New("'api' can not be empty")
	}
	if c.Timeout == 0 {
		return errors.New("'timeout' must be greater than 0")
	}

	if len(c.Validators) < 2 {
		return errors.Errorf("at least 2 genesis validators are required, got %d", len(c.Validators))
	}
	c.validators = make([]types.AccountID, 0, len(c.Validators))
	for _, s := range c.Validators {
		acc, err := utils.DecodeAccount(s)
		if err != nil {
			return errors.Errorf("invalid validator account '%s': %v", s, err)
		}
		c.validators = append(c.validators, acc)
	}

	for _, s := range c.Bootstrap {
		if _, err := multiaddr.NewMultiaddr(s); err != nil {
			return errors.Errorf("invalid bootstrap address '%s': %v", s, err)
		}
	}

	return c.SetWorkspace(c.Workspace)
}

func (c *Confile) SetServicePort(port uint16) error {
	if port < 1024 {
		return errors.Errorf("Prohibit the use of system reserved port: %v", port)
	}
	c.Port = port
	return nil
}

func (c *Confile) SetWorkspace(workspace string) error {
	fstat, err := os.Stat(workspace)
	if err != nil {
		err = os.MkdirAll(workspace, configs.DirMode)
		if err != nil {
			return err
		}
	} else {
		if !fstat.IsDir() {
			return errors.Errorf("the '%v' is not a directory", workspace)
		}
	}
	c.Workspace = workspace
	return nil
}

func (c *Confile) SetMnemonic(mnemonic string) error {
	_, err := signature.KeyringPairFromSecret(mnemonic, configs.Ss58Prefix)
	if err != nil {
		return err
	}
	c.Mnemonic = mnemonic
	return nil
}

func (c *Confile) ReadWorkspace() string {
	return c.Workspace
}

func (c *Confile) ReadServicePort() uint16 {
	return c.Port
}

func (c *Confile) ReadBlockTime() time.Duration {
	return time.Duration(c.BlockTime) * time.Second
}

func (c *Confile) ReadSessionPeriod() uint32 {
	return c.SessionPeriod
}

func (c *Confile) ReadMnemonic() string {
	return c.Mnemonic
}

func (c *Confile) ReadValidatorMode() bool {
	return c.Validator
}

func (c *Confile) ReadMinAuthorities() uint32 {
	return c.MinAuthorities
}

func (c *Confile) ReadMaxDeadSession() uint32 {
	return c.MaxDeadSession
}

func (c *Confile) ReadGenesisValidators() []types.AccountID {
	return c.validators
}

func (c *Confile) ReadIpfsApi() string {
	return c.Api
}

func (c *Confile) ReadIpfsTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *Confile) ReadBootstrap() []string {
	return c.Bootstrap
}

func (c *Confile) ReadSignaturePublickey() []byte {
	if c.Mnemonic == "" {
		return nil
	}
	key, err := signature.KeyringPairFromSecret(c.Mnemonic, configs.Ss58Prefix)
	if err != nil {
		return nil
	}
	return key.PublicKey
}

func (c *Confile) ReadSignatureAccount() string {
	acc, _ := utils.EncodeAccount(c.ReadSignaturePublickey())
	return acc
}
