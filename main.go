// Package main is the entry point for the wpreview CLI.
package main

import "wpreview.dev/pkg/wpreview/cmd"

func main() {
	cmd.Execute()
}
