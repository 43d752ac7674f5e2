package main

import "catalog-recovery/cmd"

func main() {
	cmd.Execute()
}
