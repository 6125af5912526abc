// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/gedforge/gedforge/cmd/gedforge"

func main() {
	cmd.Execute()
}
