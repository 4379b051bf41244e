/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"bytes"
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// RecoverError is used to record the stack information of panic
func RecoverError(err interface{}) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%v\n", "--------------------panic--------------------")
	fmt.Fprintf(buf, "%v\n", err)
	fmt.Fprintf(buf, "%v\n", string(debug.Stack()))
	return buf.String()
}

type SysUsage struct {
	CpuPercent  float64 `json:"cpu_percent"`
	MemTotal    uint64  `json:"mem_total"`
	MemUsed     uint64  `json:"mem_used"`
	MemUsedRate float64 `json:"mem_used_rate"`
}

func GetSysUsage() (SysUsage, error) {
	var result SysUsage
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return result, errors.Wrapf(err, "[mem.VirtualMemory]")
	}
	result.MemTotal = memInfo.Total
	result.MemUsed = memInfo.Used
	result.MemUsedRate = memInfo.UsedPercent

	percent, err := cpu.Percent(0, false)
	if err != nil {
		return result, errors.Wrapf(err, "[cpu.Percent]")
	}
	if len(percent) > 0 {
		result.CpuPercent = percent[0]
	}
	return result, nil
}
