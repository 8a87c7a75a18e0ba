/* Copyright 2025 Chronicle Authors
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

// Package connectivity reports whether outbound network is usable
package connectivity

import (
	"net"
)

// Checker reports network availability. Implementations must answer
// immediately without probing a remote host.
type Checker interface {
	IsAvailable() bool
}

// Static is a checker with a fixed answer
type Static bool

// IsAvailable returns the fixed answer
func (s Static) IsAvailable() bool {
	return bool(s)
}

// Interfaces inspects the network interfaces of the host. The host is
// online when some interface other than loopback is up and holds a
// routable unicast address.
type Interfaces struct {
	// list returns the interfaces and their addresses. It is replaced in tests.
	list func() ([]iface, error)
}

type iface struct {
	flags net.Flags
	addrs []net.Addr
}

// NewInterfaces returns a checker over the host network interfaces
func NewInterfaces() *Interfaces {
	return &Interfaces{list: hostInterfaces}
}

func hostInterfaces() ([]iface, error) {
	ifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	ret := make([]iface, 0, len(ifs))
	for _, i := range ifs {
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}

		ret = append(ret, iface{flags: i.Flags, addrs: addrs})
	}

	return ret, nil
}

// IsAvailable reports whether a usable interface exists
func (c *Interfaces) IsAvailable() bool {
	ifs, err := c.list()
	if err != nil {
		return false
	}

	for _, i := range ifs {
		if i.flags&net.FlagUp == 0 || i.flags&net.FlagLoopback != 0 {
			continue
		}

		for _, a := range i.addrs {
			if routable(a) {
				return true
			}
		}
	}

	return false
}

func routable(a net.Addr) bool {
	var ip net.IP
	switch v := a.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return false
	}

	return ip.IsGlobalUnicast() && !ip.IsLinkLocalUnicast()
}

// Resolve returns the checker for the given configuration. Forcing offline
// mode always reports the network as unavailable.
func Resolve(offline bool) Checker {
	if offline {
		return Static(false)
	}

	return NewInterfaces()
}
