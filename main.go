// Copyright © 2026 The kconfedit Authors
// Entry point

package main

import "github.com/kconfedit/kconfedit/cmd"

func main() {
	cmd.Execute()
}
