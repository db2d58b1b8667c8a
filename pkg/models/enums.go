/*
 * Copyright 2026 Quartz Labs, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

// NodeClass identifies the kind of managed endpoint a device represents.
type NodeClass string

const (
	NodeClassWindowsWorkstation NodeClass = "WINDOWS_WORKSTATION"
	NodeClassWindowsServer      NodeClass = "WINDOWS_SERVER"
	NodeClassMac                NodeClass = "MAC"
	NodeClassMacServer          NodeClass = "MAC_SERVER"
	NodeClassLinuxWorkstation   NodeClass = "LINUX_WORKSTATION"
	NodeClassLinuxServer        NodeClass = "LINUX_SERVER"
	NodeClassCloudMonitorTarget NodeClass = "CLOUD_MONITOR_TARGET"
	NodeClassVMWareVMHost       NodeClass = "VMWARE_VM_HOST"
	NodeClassVMWareVMGuest      NodeClass = "VMWARE_VM_GUEST"
	NodeClassNMSSwitch          NodeClass = "NMS_SWITCH"
	NodeClassNMSRouter          NodeClass = "NMS_ROUTER"
	NodeClassUnknown            NodeClass = ""
)

// AlertSeverity carries the remote platform's ordered severity scale.
type AlertSeverity string

const (
	SeverityNone     AlertSeverity = "NONE"
	SeverityMinor    AlertSeverity = "MINOR"
	SeverityModerate AlertSeverity = "MODERATE"
	SeverityMajor    AlertSeverity = "MAJOR"
	SeverityCritical AlertSeverity = "CRITICAL"
)

var severityRank = map[AlertSeverity]int{
	SeverityNone:     0,
	SeverityMinor:    1,
	SeverityModerate: 2,
	SeverityMajor:    3,
	SeverityCritical: 4,
}

// Rank returns the ordinal position of the severity. Unknown severities rank
// below NONE so they never outrank real data.
func (s AlertSeverity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}

	return -1
}

// AtLeast reports whether s is as severe as other or more.
func (s AlertSeverity) AtLeast(other AlertSeverity) bool {
	return s.Rank() >= other.Rank()
}

// ParseSeverity maps a raw string onto the known scale, defaulting to NONE.
func ParseSeverity(raw string) AlertSeverity {
	s := AlertSeverity(raw)
	if _, ok := severityRank[s]; ok {
		return s
	}

	return SeverityNone
}
