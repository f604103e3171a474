// hashi.go - a console and web Hashiwokakero puzzle tool.
// Copyright (C) 2016 the hashi.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package main

import (
	"testing"

	"github.com/islandhopper/hashi.go/dbprep"
)

func TestClearStorage(t *testing.T) {
	if err := dbprep.ReinitializeAll(); err != nil {
		t.Skipf("No storage available, skipping: %v", err)
	}
}
